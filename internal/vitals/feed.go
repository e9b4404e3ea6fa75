package vitals

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"patient_monitoring/internal/logger"

	"github.com/gorilla/websocket"
)

// Reconnect/backoff and read tuning for the feed connection.
const (
	feedDialTimeout   = 10 * time.Second
	feedReadLimit     = 1 << 12 // 4 KB
	feedPongWait      = 60 * time.Second
	backoffInitial    = time.Second
	backoffMax        = 30 * time.Second
	backoffMultiplier = 2
)

// Ingestor is what the feed client delivers into: the monitor.
type Ingestor interface {
	Ingest(ctx context.Context, ev Event) error
	MarkFeedDown(ctx context.Context)
}

// feedEnvelope mirrors the wire shape of the vitals feed: one JSON
// object per message, discriminated by the "event" field.
type feedEnvelope struct {
	Event string `json:"event"` // "bpm_update" | "sensor_status"
	Room  struct {
		ID int `json:"id"`
	} `json:"room"`
	Patient *struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"patient,omitempty"`
	BPM             *float64 `json:"bpm,omitempty"`
	MacAddress      string   `json:"macAddress,omitempty"`
	Status          string   `json:"status,omitempty"`
	Timestamp       string   `json:"timestamp,omitempty"`
	ServerTimestamp string   `json:"serverTimestamp,omitempty"`
}

// FeedClient maintains the connection to the push-based vitals event
// source, decoding bpm_update and sensor_status messages and forwarding
// them to the monitor in delivery order. It reconnects with capped
// exponential backoff; every drop degrades the monitor via MarkFeedDown
// so no room keeps a live tier while the feed is gone.
type FeedClient struct {
	url    string
	sink   Ingestor
	log    *logger.Logger
	dialer *websocket.Dialer
}

func NewFeedClient(url string, sink Ingestor, log *logger.Logger) *FeedClient {
	return &FeedClient{
		url:  url,
		sink: sink,
		log:  log,
		dialer: &websocket.Dialer{
			HandshakeTimeout: feedDialTimeout,
		},
	}
}

// Run connects and consumes until ctx is canceled. Blocking; run in its
// own goroutine.
func (c *FeedClient) Run(ctx context.Context) {
	backoff := backoffInitial
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			if c.log != nil {
				c.log.Warnw("feed_connect_failed", "url", c.url, "retry_in", backoff, "err", err)
			}
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}

		if c.log != nil {
			c.log.Infow("feed_connected", "url", c.url)
		}
		backoff = backoffInitial

		c.readLoop(ctx, conn)
		_ = conn.Close()

		// Connection dropped: all live tiers are stale until fresh events
		// arrive after reconnect.
		c.sink.MarkFeedDown(ctx)
	}
}

func (c *FeedClient) readLoop(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadLimit(feedReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(feedDialTimeout))
	})

	// Close the connection when ctx ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && c.log != nil {
				c.log.Infow("feed_read_closed", "err", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		c.handleMessage(ctx, payload)
	}
}

func (c *FeedClient) handleMessage(ctx context.Context, payload []byte) {
	var env feedEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		if c.log != nil {
			c.log.Warnw("feed_decode_failed", "err", err)
		}
		return
	}

	ev, ok := env.toEvent()
	if !ok {
		return // unknown event kind; ignore
	}

	if err := c.sink.Ingest(ctx, ev); err != nil {
		// Malformed events are dropped, never propagated into display.
		if errors.Is(err, ErrInvalidEvent) {
			if c.log != nil {
				c.log.Warnw("feed_event_dropped", "event", env.Event, "err", err)
			}
			return
		}
		if c.log != nil {
			c.log.Errorw("feed_ingest_failed", "event", env.Event, "room_id", env.Room.ID, "err", err)
		}
	}
}

func (e feedEnvelope) toEvent() (Event, bool) {
	switch e.Event {
	case "bpm_update":
		ev := VitalSample{
			RoomID:    e.Room.ID,
			HeartRate: e.BPM,
			Timestamp: parseFeedTime(e.ServerTimestamp),
		}
		if e.Patient != nil {
			ev.PatientID = e.Patient.ID
		}
		return ev, true
	case "sensor_status":
		return SensorStatus{
			RoomID:     e.Room.ID,
			MacAddress: e.MacAddress,
			Status:     e.Status,
			Timestamp:  parseFeedTime(e.Timestamp),
		}, true
	default:
		return nil, false
	}
}

func parseFeedTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= backoffMultiplier
	if d > backoffMax {
		return backoffMax
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
