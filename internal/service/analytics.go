package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourname/activitytracker/internal"
	"github.com/yourname/activitytracker/internal/storage"
)

var validate = validator.New()

type SessionRequest struct {
	UserID     string    `validate:"required"`
	LoginTime  time.Time `validate:"required"`
	LogoutTime time.Time `validate:"required,gtfield=LoginTime"`
}

// Analytics owns the session aggregation: interval merging, activity
// totals, per-day activity and the inactivity scan.
type Analytics struct {
	users    storage.UserRepository
	sessions storage.SessionRepository
	cache    *IntervalCache
	logger   internal.Logger
	now      func() time.Time
}

func NewAnalytics(users storage.UserRepository, sessions storage.SessionRepository, cache *IntervalCache, logger internal.Logger) *Analytics {
	return &Analytics{
		users:    users,
		sessions: sessions,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

func (a *Analytics) RegisterUser(ctx context.Context, userID, userName string) error {
	return a.users.CreateUser(ctx, &internal.User{ID: userID, Name: userName})
}

func (a *Analytics) RecordSession(ctx context.Context, userID string, login, logout time.Time) error {
	req := SessionRequest{UserID: userID, LoginTime: login, LogoutTime: logout}
	if err := validate.Struct(&req); err != nil {
		a.logger.Debugf("rejected session for %s: %v", userID, err)
		return internal.ErrInvalidInterval
	}
	return a.sessions.SaveSession(ctx, &internal.Session{
		UserID:     userID,
		LoginTime:  login,
		LogoutTime: logout,
	})
}

// MergeSessions computes the minimal disjoint cover of the given
// sessions. Sorted by login time ascending with logout ascending as
// tiebreak, so a session contained in another is always absorbed by its
// container rather than closing the walk early.
func MergeSessions(sessions []internal.Session) []internal.Interval {
	if len(sessions) == 0 {
		return []internal.Interval{}
	}

	sorted := make([]internal.Session, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].LoginTime.Equal(sorted[j].LoginTime) {
			return sorted[i].LogoutTime.Before(sorted[j].LogoutTime)
		}
		return sorted[i].LoginTime.Before(sorted[j].LoginTime)
	})

	intervals := []internal.Interval{}
	current := internal.Interval{Start: sorted[0].LoginTime, End: sorted[0].LogoutTime}
	for _, s := range sorted[1:] {
		// Touching counts as overlap; a nested session extends nothing.
		if !s.LoginTime.After(current.End) {
			if s.LogoutTime.After(current.End) {
				current.End = s.LogoutTime
			}
			continue
		}
		intervals = append(intervals, current)
		current = internal.Interval{Start: s.LoginTime, End: s.LogoutTime}
	}
	return append(intervals, current)
}

// TotalActivity returns the user's active time in whole minutes, with
// overlapping and nested sessions counted once.
func (a *Analytics) TotalActivity(ctx context.Context, userID string) (int64, error) {
	intervals, err := a.mergedIntervals(ctx, userID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, iv := range intervals {
		total += iv.Minutes()
	}
	return total, nil
}

// MonthlyActivity maps each calendar date of the given month to minutes
// of activity. Intervals are merged before bucketing, so a nested
// session never double counts within a day; a span crossing midnight
// contributes its overlap to every date it touches. Dates outside the
// month are clipped away.
func (a *Analytics) MonthlyActivity(ctx context.Context, userID string, month time.Time) (map[string]int64, error) {
	intervals, err := a.mergedIntervals(ctx, userID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	activity := make(map[string]int64)
	for _, iv := range intervals {
		start := maxTime(iv.Start, monthStart)
		end := minTime(iv.End, monthEnd)
		for start.Before(end) {
			dayEnd := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()).AddDate(0, 0, 1)
			segmentEnd := minTime(dayEnd, end)
			activity[start.Format("2006-01-02")] += int64(segmentEnd.Sub(start) / time.Minute)
			start = segmentEnd
		}
	}
	return activity, nil
}

// FindInactive returns the ids of users whose last logout lies more than
// the given number of whole days in the past. Users without a single
// recorded session have no inactivity clock and are skipped.
func (a *Analytics) FindInactive(ctx context.Context, days int) ([]string, error) {
	if days < 0 {
		return nil, internal.ErrInvalidArgument
	}

	ids, err := a.users.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	now := a.now()
	inactive := []string{}
	for _, id := range ids {
		sessions, err := a.sessions.ListSessions(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(sessions) == 0 {
			continue
		}
		last := sessions[0].LogoutTime
		for _, s := range sessions[1:] {
			if s.LogoutTime.After(last) {
				last = s.LogoutTime
			}
		}
		if int(now.Sub(last).Hours()/24) > days {
			inactive = append(inactive, id)
		}
	}
	return inactive, nil
}

func (a *Analytics) mergedIntervals(ctx context.Context, userID string) ([]internal.Interval, error) {
	sessions, err := a.sessions.ListSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, internal.ErrNoSessions
	}

	key := fmt.Sprintf("%s@%d", userID, len(sessions))
	if intervals, ok := a.cache.Get(key); ok {
		return intervals, nil
	}
	intervals := MergeSessions(sessions)
	a.cache.Add(key, intervals)
	return intervals, nil
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
