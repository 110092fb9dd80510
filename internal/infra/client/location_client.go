// Package client talks to the data plane HTTP API on behalf of a driver device.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/origa008/zerodriveless-sub001/internal/application/tracker"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	"github.com/origa008/zerodriveless-sub001/pkg/otel"
)

// ErrRejected marks a 4xx answer. It never trips the breaker and the tracker does not retry it.
var ErrRejected = fmt.Errorf("location update rejected: %w", tracker.ErrPushRejected)

type locationRequest struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// LocationClient pushes driver positions to PUT /api/v1/drivers/{id}/location.
type LocationClient struct {
	baseURL string
	token   string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	log     logger.Logger
}

func NewLocationClient(baseURL, token string, timeout time.Duration, log logger.Logger) *LocationClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &LocationClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "location-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "Circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})
	return c
}

// Push satisfies tracker.LocationSink.
func (c *LocationClient) Push(ctx context.Context, driverID string, p entity.Point, at time.Time) error {
	body, err := json.Marshal(locationRequest{Latitude: p.Latitude, Longitude: p.Longitude, RecordedAt: at.UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}

	_, err = c.cb.Execute(func() (interface{}, error) {
		return nil, c.put(ctx, driverID, body)
	})
	return err
}

func (c *LocationClient) put(ctx context.Context, driverID string, body []byte) error {
	endpoint := c.baseURL + "/api/v1/drivers/" + url.PathEscape(driverID) + "/location"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	otel.InjectHTTPHeaders(ctx, req.Header)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("location request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var apiErr struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
	if resp.StatusCode < 500 {
		return fmt.Errorf("%w: %d %s", ErrRejected, resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("location api returned %d: %s", resp.StatusCode, apiErr.Error)
}
