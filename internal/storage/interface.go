package storage

import (
	"context"

	"github.com/yourname/activitytracker/internal"
)

type UserRepository interface {
	// CreateUser registers a new user. Returns internal.ErrAlreadyExists
	// if the identifier is already taken.
	CreateUser(ctx context.Context, user *internal.User) error
	UserExists(ctx context.Context, userID string) (bool, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

type SessionRepository interface {
	// SaveSession appends a session to the owning user's history.
	// Returns internal.ErrUserNotFound for an unregistered owner.
	// Sessions are accepted verbatim; overlap reconciliation happens at
	// read time.
	SaveSession(ctx context.Context, session *internal.Session) error
	// ListSessions returns a registered user's sessions in insertion
	// order (empty slice when none) or internal.ErrUserNotFound.
	ListSessions(ctx context.Context, userID string) ([]internal.Session, error)
}

type Store interface {
	UserRepository
	SessionRepository
	Close() error
}
