package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourname/activitytracker/internal"
)

func newTestStatus(t *testing.T) (*Status, *Analytics) {
	t.Helper()
	a, store := newTestAnalytics(t)
	return NewStatus(a, store), a
}

func TestUserStatusThresholds(t *testing.T) {
	tests := []struct {
		name    string
		minutes time.Duration
		want    string
	}{
		{"59 minutes is inactive", 59 * time.Minute, StatusInactive},
		{"60 minutes is active", 60 * time.Minute, StatusActive},
		{"119 minutes is active", 119 * time.Minute, StatusActive},
		{"120 minutes is highly active", 120 * time.Minute, StatusHighlyActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, a := newTestStatus(t)
			ctx := context.Background()
			assert.NoError(t, a.RegisterUser(ctx, "u1", "Alice"))
			assert.NoError(t, a.RecordSession(ctx, "u1", base, base.Add(tt.minutes)))

			status, err := s.UserStatus(ctx, "u1")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestUserStatusSubMinuteSessionIsInactive(t *testing.T) {
	s, a := newTestStatus(t)
	ctx := context.Background()
	assert.NoError(t, a.RegisterUser(ctx, "u1", "Alice"))
	assert.NoError(t, a.RecordSession(ctx, "u1", base, base.Add(30*time.Second)))

	status, err := s.UserStatus(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, status)
}

func TestUserStatusFailsLikeAggregator(t *testing.T) {
	s, a := newTestStatus(t)
	ctx := context.Background()

	_, err := s.UserStatus(ctx, "ghost")
	assert.ErrorIs(t, err, internal.ErrUserNotFound)

	assert.NoError(t, a.RegisterUser(ctx, "u1", "Alice"))
	_, err = s.UserStatus(ctx, "u1")
	assert.ErrorIs(t, err, internal.ErrNoSessions)
}

func TestLastSessionDate(t *testing.T) {
	s, a := newTestStatus(t)
	ctx := context.Background()
	assert.NoError(t, a.RegisterUser(ctx, "u1", "Alice"))

	// Zero sessions is a valid empty result, not an error.
	date, err := s.LastSessionDate(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "", date)

	// The max logout wins even when a later-inserted session ends earlier.
	assert.NoError(t, a.RecordSession(ctx, "u1", base, base.AddDate(0, 0, 2)))
	assert.NoError(t, a.RecordSession(ctx, "u1", base, base.Add(time.Hour)))

	date, err = s.LastSessionDate(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-12", date)
}

func TestLastSessionDateUnknownUser(t *testing.T) {
	s, _ := newTestStatus(t)
	_, err := s.LastSessionDate(context.Background(), "ghost")
	assert.ErrorIs(t, err, internal.ErrUserNotFound)
}
