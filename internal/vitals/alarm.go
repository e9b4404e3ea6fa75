package vitals

import (
	"context"
	"sync"

	"patient_monitoring/internal/logger"
	"patient_monitoring/internal/models"
)

// Action is the alarm lifecycle decision derived from a tier transition.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	default:
		return "none"
	}
}

// Sounder owns the audible alarm resource for one room. Start acquires a
// looping playback scoped to the room; Stop releases it. Implementations
// may do the actual playback asynchronously, but both calls must be safe
// to repeat for the same room.
type Sounder interface {
	Start(ctx context.Context, roomID int) error
	Stop(ctx context.Context, roomID int) error
}

// AlarmController drives the per-room alarm lifecycle off committed tier
// transitions. It owns the only "is an alarm sounding for room X" flag;
// all mutation goes through OnClassification, Teardown and Close — never
// direct writes from rendering or transport code.
type AlarmController struct {
	sounder Sounder
	log     *logger.Logger

	mu       sync.Mutex
	sounding map[int]bool
}

func NewAlarmController(sounder Sounder, log *logger.Logger) *AlarmController {
	return &AlarmController{
		sounder:  sounder,
		log:      log,
		sounding: make(map[int]bool),
	}
}

// OnClassification applies the tier transition for a room and returns
// the action taken. A second Start while already sounding is a no-op, and
// switching between two alarm-bearing tiers (urgent <-> no_signal) keeps
// the alarm running uninterrupted. Sounder failures are logged and
// swallowed: classification must keep flowing even when audio cannot
// start. The sounding flag is only set on a successful Start, so the next
// alarm-bearing record retries acquisition.
func (a *AlarmController) OnClassification(ctx context.Context, roomID int, next models.Tier) Action {
	a.mu.Lock()
	defer a.mu.Unlock()

	sounding := a.sounding[roomID]
	switch {
	case next.AlarmBearing() && !sounding:
		if err := a.sounder.Start(ctx, roomID); err != nil {
			if a.log != nil {
				a.log.Errorw("alarm_start_failed", "room_id", roomID, "tier", next, "err", err)
			}
			return ActionStart
		}
		a.sounding[roomID] = true
		return ActionStart

	case !next.AlarmBearing() && sounding:
		a.releaseLocked(ctx, roomID)
		return ActionStop

	default:
		return ActionNone
	}
}

// Teardown force-stops any active alarm for the room. Called on room
// unassignment and feed loss; not cooperative — the resource is released
// unconditionally. No-op when the room is silent.
func (a *AlarmController) Teardown(ctx context.Context, roomID int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sounding[roomID] {
		a.releaseLocked(ctx, roomID)
	}
}

// Active reports whether the room's alarm is currently sounding.
func (a *AlarmController) Active(roomID int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sounding[roomID]
}

// Close stops every active alarm. Used on shutdown so no audio resource
// outlives the controller.
func (a *AlarmController) Close(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for roomID, on := range a.sounding {
		if on {
			a.releaseLocked(ctx, roomID)
		}
	}
}

// releaseLocked clears the flag first so the release happens exactly once
// even if Stop fails. Callers hold a.mu.
func (a *AlarmController) releaseLocked(ctx context.Context, roomID int) {
	delete(a.sounding, roomID)
	if err := a.sounder.Stop(ctx, roomID); err != nil {
		if a.log != nil {
			a.log.Errorw("alarm_stop_failed", "room_id", roomID, "err", err)
		}
	}
}
