package service

import (
	"context"

	"github.com/yourname/activitytracker/internal/storage"
)

const (
	StatusInactive     = "Inactive"
	StatusActive       = "Active"
	StatusHighlyActive = "Highly active"
)

type Status struct {
	analytics *Analytics
	sessions  storage.SessionRepository
}

func NewStatus(analytics *Analytics, sessions storage.SessionRepository) *Status {
	return &Status{analytics: analytics, sessions: sessions}
}

// UserStatus classifies total activity: under 60 minutes is Inactive,
// under 120 Active, 120 and up Highly active.
func (s *Status) UserStatus(ctx context.Context, userID string) (string, error) {
	total, err := s.analytics.TotalActivity(ctx, userID)
	if err != nil {
		return "", err
	}
	switch {
	case total < 60:
		return StatusInactive, nil
	case total < 120:
		return StatusActive, nil
	default:
		return StatusHighlyActive, nil
	}
}

// LastSessionDate returns the calendar date of the latest logout among
// the user's raw sessions, or "" for a registered user with no history.
func (s *Status) LastSessionDate(ctx context.Context, userID string) (string, error) {
	sessions, err := s.sessions.ListSessions(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "", nil
	}
	last := sessions[0].LogoutTime
	for _, sess := range sessions[1:] {
		if sess.LogoutTime.After(last) {
			last = sess.LogoutTime
		}
	}
	return last.Format("2006-01-02"), nil
}
