package storage

import (
	"context"
	"sync"

	"github.com/yourname/activitytracker/internal"
)

// MemoryStorage is the default backend. A single RWMutex guards both maps:
// registration is atomic and readers always observe a fully appended
// session list.
type MemoryStorage struct {
	mu       sync.RWMutex
	users    map[string]*internal.User
	sessions map[string][]internal.Session
	logger   internal.Logger
}

func NewMemoryStorage(logger internal.Logger) *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[string]*internal.User),
		sessions: make(map[string][]internal.Session),
		logger:   logger,
	}
}

// --- UserRepository ---

func (s *MemoryStorage) CreateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return internal.ErrAlreadyExists
	}
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *MemoryStorage) UserExists(ctx context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID]
	return ok, nil
}

func (s *MemoryStorage) ListUserIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids, nil
}

// --- SessionRepository ---

func (s *MemoryStorage) SaveSession(ctx context.Context, session *internal.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[session.UserID]; !ok {
		return internal.ErrUserNotFound
	}
	s.sessions[session.UserID] = append(s.sessions[session.UserID], *session)
	return nil
}

func (s *MemoryStorage) ListSessions(ctx context.Context, userID string) ([]internal.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[userID]; !ok {
		return nil, internal.ErrUserNotFound
	}
	sessions := make([]internal.Session, len(s.sessions[userID]))
	copy(sessions, s.sessions[userID])
	return sessions, nil
}

func (s *MemoryStorage) Close() error { return nil }

// --- Compile-time assertions ---
var _ Store = (*MemoryStorage)(nil)
