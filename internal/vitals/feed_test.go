package vitals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIngestor records delivered events.
type fakeIngestor struct {
	events   []Event
	feedDown int
	err      error
}

func (f *fakeIngestor) Ingest(ctx context.Context, ev Event) error {
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeIngestor) MarkFeedDown(ctx context.Context) {
	f.feedDown++
}

func TestFeedClient_HandleMessage(t *testing.T) {
	sink := &fakeIngestor{}
	c := NewFeedClient("ws://example/stream", sink, nil)
	ctx := context.Background()

	c.handleMessage(ctx, []byte(`{
		"event":"bpm_update",
		"room":{"id":3},
		"patient":{"id":7,"name":"Maria"},
		"bpm":92.5,
		"serverTimestamp":"2026-08-20T10:00:00Z"
	}`))
	require.Len(t, sink.events, 1)

	sample, ok := sink.events[0].(VitalSample)
	require.True(t, ok)
	assert.Equal(t, 3, sample.RoomID)
	assert.Equal(t, 7, sample.PatientID)
	require.NotNil(t, sample.HeartRate)
	assert.Equal(t, 92.5, *sample.HeartRate)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), sample.Timestamp)

	c.handleMessage(ctx, []byte(`{
		"event":"sensor_status",
		"room":{"id":3},
		"macAddress":"aa:bb:cc",
		"status":"timeout",
		"timestamp":"2026-08-20T10:00:05Z"
	}`))
	require.Len(t, sink.events, 2)

	status, ok := sink.events[1].(SensorStatus)
	require.True(t, ok)
	assert.Equal(t, "aa:bb:cc", status.MacAddress)
	assert.Equal(t, StatusTimeout, status.Status)
}

func TestFeedClient_MissingBPMBecomesNilReading(t *testing.T) {
	sink := &fakeIngestor{}
	c := NewFeedClient("ws://example/stream", sink, nil)

	c.handleMessage(context.Background(), []byte(`{"event":"bpm_update","room":{"id":3}}`))
	require.Len(t, sink.events, 1)

	sample := sink.events[0].(VitalSample)
	assert.Nil(t, sample.HeartRate)
}

func TestFeedClient_IgnoresNoise(t *testing.T) {
	sink := &fakeIngestor{}
	c := NewFeedClient("ws://example/stream", sink, nil)
	ctx := context.Background()

	c.handleMessage(ctx, []byte(`not json`))
	c.handleMessage(ctx, []byte(`{"event":"heartbeat"}`))
	assert.Empty(t, sink.events)

	// invalid events are delivered, rejected by the sink and dropped here
	sink.err = ErrInvalidEvent
	c.handleMessage(ctx, []byte(`{"event":"bpm_update","room":{"id":0},"bpm":80}`))
	assert.Len(t, sink.events, 1)
}

func TestNextBackoff(t *testing.T) {
	assert.Equal(t, 2*time.Second, nextBackoff(time.Second))
	assert.Equal(t, 16*time.Second, nextBackoff(8*time.Second))
	assert.Equal(t, backoffMax, nextBackoff(20*time.Second), "backoff is capped")
	assert.Equal(t, backoffMax, nextBackoff(backoffMax))
}

func TestParseFeedTime(t *testing.T) {
	assert.True(t, parseFeedTime("").IsZero())
	assert.True(t, parseFeedTime("yesterday").IsZero())
	assert.Equal(t,
		time.Date(2026, 8, 20, 13, 0, 0, 0, time.UTC),
		parseFeedTime("2026-08-20T10:00:00-03:00"))
}
