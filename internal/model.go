package internal

import "time"

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Session struct {
	UserID     string    `json:"user_id"`
	LoginTime  time.Time `json:"login_time"`
	LogoutTime time.Time `json:"logout_time"`
}

func (s Session) Minutes() int64 {
	return int64(s.LogoutTime.Sub(s.LoginTime) / time.Minute)
}

// Interval is a maximal union of sessions that overlap or touch.
// Derived on demand, never persisted.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (iv Interval) Minutes() int64 {
	return int64(iv.End.Sub(iv.Start) / time.Minute)
}
