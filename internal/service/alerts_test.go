package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"patient_monitoring/internal/repository"
)

func TestAlertsList_NormalizesFilter(t *testing.T) {
	repo := &stubAlerts{}
	svc := NewAlertsService(repo)

	loc := time.FixedZone("BRT", -3*60*60)
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, loc)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)

	if _, err := svc.List(context.Background(), AlertFilter{
		From: from,
		To:   to,
		Type: "  urgent ",
	}); err != nil {
		t.Fatalf("List: %v", err)
	}

	if repo.lastFrom.Location() != time.UTC || repo.lastTo.Location() != time.UTC {
		t.Fatal("filter times must be normalized to UTC")
	}
	if !repo.lastFrom.Equal(from) {
		t.Fatalf("from changed meaning: %v vs %v", repo.lastFrom, from)
	}
	if repo.lastType != "URGENT" {
		t.Fatalf("expected normalized type URGENT, got %q", repo.lastType)
	}
}

func TestAlertsList_RejectsInvertedRange(t *testing.T) {
	svc := NewAlertsService(&stubAlerts{})

	_, err := svc.List(context.Background(), AlertFilter{
		From: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange, got %v", err)
	}
}

func TestAlertsList_ZeroTimesPassThrough(t *testing.T) {
	repo := &stubAlerts{}
	svc := NewAlertsService(repo)

	if _, err := svc.List(context.Background(), AlertFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !repo.lastFrom.IsZero() || !repo.lastTo.IsZero() {
		t.Fatal("zero bounds must stay zero")
	}
}

func TestAlertsMarkViewed_EmptyID(t *testing.T) {
	repo := &stubAlerts{}
	svc := NewAlertsService(repo)

	if err := svc.MarkViewed(context.Background(), "  "); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.viewed) != 0 {
		t.Fatal("empty id must not reach the repository")
	}
}
