package vitals

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"patient_monitoring/internal/logger"
	"patient_monitoring/internal/models"
)

// Registry resolves a room's current occupant and configured bounds.
// It returns (nil, nil) for a vacant room. The monitor treats it as a
// read-only lookup; registry writes happen in the service layer.
type Registry interface {
	Occupant(ctx context.Context, roomID int) (*Occupant, error)
}

// AlertSink records alert notifications. Failures are logged and
// swallowed — alerting must never block classification.
type AlertSink interface {
	Append(ctx context.Context, a models.Alert) error
}

const subscriberBuffer = 16

// Monitor is the live classification engine and hub. It holds the latest
// classification record per room (last-write-wins, no history), drives
// the alarm controller off committed tier transitions, and publishes
// display-ready room statuses to subscribers over channels.
type Monitor struct {
	registry Registry
	alarms   *AlarmController
	alerts   AlertSink
	log      *logger.Logger

	mu      sync.Mutex
	records map[int]models.ClassificationRecord
	subs    map[int]chan models.RoomStatus
	nextSub int
}

func NewMonitor(registry Registry, alarms *AlarmController, alerts AlertSink, log *logger.Logger) *Monitor {
	return &Monitor{
		registry: registry,
		alarms:   alarms,
		alerts:   alerts,
		log:      log,
		records:  make(map[int]models.ClassificationRecord),
		subs:     make(map[int]chan models.RoomStatus),
	}
}

// Ingest classifies one feed event and commits the result. Returns
// ErrInvalidEvent (wrapped) for malformed events; the caller drops and
// logs those without touching any room state.
func (m *Monitor) Ingest(ctx context.Context, ev Event) error {
	if ev == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	roomID := ev.eventRoomID()
	if roomID <= 0 {
		return fmt.Errorf("%w: missing room id", ErrInvalidEvent)
	}

	occ, err := m.registry.Occupant(ctx, roomID)
	if err != nil {
		return fmt.Errorf("resolve occupant for room %d: %w", roomID, err)
	}

	rec, err := Classify(ev, occ)
	if err != nil {
		return err
	}

	m.commit(ctx, occ, rec)
	return nil
}

// commit stores the record, applies the alarm transition keyed off the
// latest committed tier, records alert notifications on tier changes and
// publishes the new status. Store and alarm decision happen under the
// same lock so a stale in-flight event can never flip the alarm against
// a newer committed tier.
func (m *Monitor) commit(ctx context.Context, occ *Occupant, rec models.ClassificationRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, tracked := m.records[rec.RoomID]
	m.records[rec.RoomID] = rec

	m.alarms.OnClassification(ctx, rec.RoomID, rec.Tier)

	if occ != nil && rec.Tier != models.TierNormal && rec.Tier != models.TierEmpty {
		if !tracked || prev.Tier != rec.Tier {
			m.appendAlert(ctx, occ, rec)
		}
	}

	m.publishLocked(rec)
}

// ReleaseRoom tears down a room's live state when its patient is
// unassigned: the record reverts to empty and any active alarm is
// stopped unconditionally.
func (m *Monitor) ReleaseRoom(ctx context.Context, roomID int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.alarms.Teardown(ctx, roomID)
	rec := models.ClassificationRecord{
		RoomID:    roomID,
		Tier:      models.TierEmpty,
		UpdatedAt: time.Now().UTC(),
	}
	m.records[roomID] = rec
	m.publishLocked(rec)
}

// MarkFeedDown degrades every tracked occupied room to the disconnected
// tier and stops its alarm. Registry data is untouched; the first fresh
// event after reconnect re-derives each room's tier from scratch.
func (m *Monitor) MarkFeedDown(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	for roomID, rec := range m.records {
		if rec.Tier == models.TierEmpty || rec.Tier == models.TierDisconnected {
			continue
		}
		m.alarms.Teardown(ctx, roomID)
		stale := models.ClassificationRecord{
			RoomID:    roomID,
			Tier:      models.TierDisconnected,
			Reason:    ReasonConnectionLost,
			UpdatedAt: now,
		}
		m.records[roomID] = stale
		m.publishLocked(stale)
	}
}

// Rooms returns the latest display-ready status for every tracked room,
// ordered by room id.
func (m *Monitor) Rooms() []models.RoomStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.RoomStatus, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, Display(rec, m.alarms.Active(rec.RoomID)))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out
}

// Room returns the latest status for one room and whether it is tracked.
func (m *Monitor) Room(roomID int) (models.RoomStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[roomID]
	if !ok {
		return models.RoomStatus{}, false
	}
	return Display(rec, m.alarms.Active(roomID)), true
}

// Subscribe registers a listener for room status updates. The returned
// cancel func must be called to release the subscription. Slow consumers
// miss intermediate updates rather than stalling the engine; the latest
// state is always available via Rooms.
func (m *Monitor) Subscribe() (<-chan models.RoomStatus, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan models.RoomStatus, subscriberBuffer)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// publishLocked fans the room's new status out to subscribers without
// blocking. Callers hold m.mu.
func (m *Monitor) publishLocked(rec models.ClassificationRecord) {
	status := Display(rec, m.alarms.Active(rec.RoomID))
	for _, ch := range m.subs {
		select {
		case ch <- status:
		default: // drop for slow consumers; Rooms() has the latest
		}
	}
}

func (m *Monitor) appendAlert(ctx context.Context, occ *Occupant, rec models.ClassificationRecord) {
	if m.alerts == nil {
		return
	}
	alert := models.Alert{
		RoomID:     rec.RoomID,
		PatientID:  occ.PatientID,
		Type:       alertType(rec.Tier),
		Message:    rec.Reason,
		OccurredAt: rec.UpdatedAt,
	}
	if err := m.alerts.Append(ctx, alert); err != nil {
		if m.log != nil {
			m.log.Errorw("alert_append_failed", "room_id", rec.RoomID, "tier", rec.Tier, "err", err)
		}
	}
}

func alertType(t models.Tier) string {
	switch t {
	case models.TierWarning:
		return models.AlertWarning
	case models.TierUrgent:
		return models.AlertUrgent
	case models.TierNoSignal:
		return models.AlertNoSignal
	default:
		return models.AlertDisconnected
	}
}
