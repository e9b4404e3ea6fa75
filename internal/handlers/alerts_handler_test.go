package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"patient_monitoring/internal/models"
	"patient_monitoring/internal/service"
)

func TestAlertHandlers_ListFilters(t *testing.T) {
	alerts := &mockAlerts{resp: []models.Alert{
		{ID: "a1", RoomID: 3, Type: models.AlertUrgent, Message: "msg"},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Alerts: alerts}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/v1/alerts/?from=2026-08-01&to=2026-08-31&type=urgent", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count  int            `json:"count"`
		Alerts []models.Alert `json:"alerts"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 1 || resp.Alerts[0].ID != "a1" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}

	if alerts.lastType != "URGENT" {
		t.Fatalf("expected uppercased type, got %q", alerts.lastType)
	}
	// date-only 'to' becomes end-of-day inclusive
	wantTo := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
	if !alerts.lastTo.Equal(wantTo) {
		t.Fatalf("expected end-of-day to=%v, got %v", wantTo, alerts.lastTo)
	}
}

func TestAlertHandlers_BadRanges(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Alerts: &mockAlerts{}}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/v1/alerts/?from=notadate", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad from, got %d", w.Code)
	}

	w = doAuthed(r, http.MethodGet, "/api/v1/alerts/?from=2026-08-31&to=2026-08-01", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}
}

func TestAlertHandlers_MarkViewed(t *testing.T) {
	alerts := &mockAlerts{}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Alerts: alerts}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodPost, "/api/v1/alerts/a1/viewed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("viewed status=%d, body=%s", w.Code, w.Body.String())
	}
	if len(alerts.viewed) != 1 || alerts.viewed[0] != "a1" {
		t.Fatalf("viewed not forwarded: %v", alerts.viewed)
	}
}
