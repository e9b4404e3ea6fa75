package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"patient_monitoring/internal/models"
	"patient_monitoring/internal/repository"
)

type AlertsService struct {
	alerts repository.Alerts
}

func NewAlertsService(alerts repository.Alerts) *AlertsService {
	return &AlertsService{alerts: alerts}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAlertType trims spaces and uppercases the type filter.
func normalizeAlertType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f AlertFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, normalizeAlertType(f.Type), nil
}

func (s *AlertsService) List(ctx context.Context, f AlertFilter) ([]models.Alert, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.alerts.List(ctx, from, to, typ)
}

func (s *AlertsService) MarkViewed(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return repository.ErrNotFound
	}
	return s.alerts.MarkViewed(ctx, id)
}
