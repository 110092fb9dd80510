package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origa008/zerodriveless-sub001/internal/application/tracker"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

func TestLocationClient_Push(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/drivers/drv-1/location", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		var body locationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, -23.55, body.Latitude)
		assert.Equal(t, -46.63, body.Longitude)
		assert.True(t, at.Equal(body.RecordedAt))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"updated":true}`))
	}))
	defer srv.Close()

	c := NewLocationClient(srv.URL+"/", "secret-token", time.Second, logger.NewNop())
	err := c.Push(context.Background(), "drv-1", entity.Point{Longitude: -46.63, Latitude: -23.55}, at)
	assert.NoError(t, err)
}

func TestLocationClient_RejectedDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"latitude and longitude are required"}`))
	}))
	defer srv.Close()

	c := NewLocationClient(srv.URL, "", time.Second, logger.NewNop())
	for i := 0; i < 5; i++ {
		err := c.Push(context.Background(), "drv-1", entity.Point{}, time.Now())
		require.ErrorIs(t, err, ErrRejected)
		assert.ErrorIs(t, err, tracker.ErrPushRejected)
		assert.ErrorContains(t, err, "latitude and longitude are required")
	}
	assert.Equal(t, gobreaker.StateClosed, c.cb.State())
}

func TestLocationClient_ServerErrorsOpenBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewLocationClient(srv.URL, "", time.Second, logger.NewNop())
	for i := 0; i < 3; i++ {
		err := c.Push(context.Background(), "drv-1", entity.Point{}, time.Now())
		assert.ErrorContains(t, err, "location api returned 500")
		assert.NotErrorIs(t, err, tracker.ErrPushRejected)
	}

	err := c.Push(context.Background(), "drv-1", entity.Point{}, time.Now())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), calls.Load())
}
