package vitals

import (
	"context"

	"patient_monitoring/internal/logger"
)

// LogSounder is the default Sounder. The server owns no audio hardware —
// playback happens on the dashboard client, keyed off the AlarmActive
// flag it receives over the websocket — so the server-side resource is a
// structured log line per transition. A hardware buzzer or paging
// integration drops in behind the same interface.
type LogSounder struct {
	log *logger.Logger
}

func NewLogSounder(log *logger.Logger) *LogSounder {
	return &LogSounder{log: log}
}

func (s *LogSounder) Start(ctx context.Context, roomID int) error {
	if s.log != nil {
		s.log.Infow("alarm_started", "room_id", roomID)
	}
	return nil
}

func (s *LogSounder) Stop(ctx context.Context, roomID int) error {
	if s.log != nil {
		s.log.Infow("alarm_stopped", "room_id", roomID)
	}
	return nil
}
