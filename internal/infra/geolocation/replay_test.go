package geolocation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const track = `
# Av. Paulista northbound
{"lat": -23.5614, "lng": -46.6559, "accuracy": 5}
{"lat": -23.5600, "lng": -46.6540, "accuracy": 4}

{"lat": -23.5590, "lng": -46.6525}
`

func TestReplay_CurrentPositionThenWatch(t *testing.T) {
	r, err := NewReplay(strings.NewReader(track), time.Millisecond, false)
	require.NoError(t, err)
	opts := outbound.PositionOptions{HighAccuracy: true, Timeout: time.Second}

	first, err := r.CurrentPosition(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, -23.5614, first.Point.Latitude)
	assert.Equal(t, 5.0, first.Accuracy)
	assert.False(t, first.Timestamp.IsZero())

	w, err := r.Watch(context.Background(), opts)
	require.NoError(t, err)
	defer w.Close()

	var got []float64
	for res := range w.Updates() {
		require.NoError(t, res.Err)
		got = append(got, res.Position.Point.Longitude)
	}
	assert.Equal(t, []float64{-46.6540, -46.6525}, got)
}

func TestReplay_ErrorLineEndsWatch(t *testing.T) {
	r, err := NewReplay(strings.NewReader(`{"lat":1,"lng":1}
{"error":"permission_denied"}
{"lat":2,"lng":2}`), time.Millisecond, false)
	require.NoError(t, err)

	w, err := r.Watch(context.Background(), outbound.PositionOptions{})
	require.NoError(t, err)

	var results []outbound.PositionResult
	for res := range w.Updates() {
		results = append(results, res)
	}
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, outbound.ErrPermissionDenied)
}

func TestReplay_TimeoutShorterThanInterval(t *testing.T) {
	r, err := NewReplay(strings.NewReader(`{"lat":1,"lng":1}`), time.Hour, true)
	require.NoError(t, err)

	w, err := r.Watch(context.Background(), outbound.PositionOptions{Timeout: 5 * time.Millisecond})
	require.NoError(t, err)

	select {
	case res := <-w.Updates():
		assert.ErrorIs(t, res.Err, outbound.ErrTimeout)
	case <-time.After(time.Second):
		t.Fatal("expected a timeout result")
	}
}

func TestReplay_CloseStopsWatch(t *testing.T) {
	r, err := NewReplay(strings.NewReader(`{"lat":1,"lng":1}`), time.Millisecond, true)
	require.NoError(t, err)
	w, err := r.Watch(context.Background(), outbound.PositionOptions{})
	require.NoError(t, err)

	<-w.Updates()
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-w.Updates():
			return !ok
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}

func TestReplay_LoopRestampsRecordedFixes(t *testing.T) {
	recorded := `{"lat":1,"lng":1,"timestamp":"2026-01-01T12:00:00Z"}`
	r, err := NewReplay(strings.NewReader(recorded), time.Millisecond, true)
	require.NoError(t, err)
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	opts := outbound.PositionOptions{Timeout: time.Second}

	first, err := r.CurrentPosition(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).Equal(first.Timestamp))

	second, err := r.CurrentPosition(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, now.Equal(second.Timestamp), "a looped fix is stamped with the current time")
}

func TestReplay_Empty(t *testing.T) {
	r, err := NewReplay(strings.NewReader(""), time.Millisecond, true)
	require.NoError(t, err)

	_, err = r.CurrentPosition(context.Background(), outbound.PositionOptions{})
	assert.ErrorIs(t, err, outbound.ErrPositionUnavailable)
}

func TestNewReplay_BadLine(t *testing.T) {
	_, err := NewReplay(strings.NewReader("{nope"), time.Second, false)
	assert.ErrorContains(t, err, "replay line 1")
}
