package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/yourname/activitytracker/internal"
)

// FileStorage keeps everything in memory and mirrors writes to two JSON
// files through debounced save workers. Same read/write semantics as the
// memory backend; the files only give the data a life across restarts.
type FileStorage struct {
	users    map[string]*internal.User
	sessions map[string][]internal.Session
	mu       sync.RWMutex

	usersFile        string
	sessionsFile     string
	saveUsersChan    chan struct{}
	saveSessionsChan chan struct{}
	shutdownChan     chan struct{}
	saveDelay        time.Duration
	logger           internal.Logger
}

func NewFileStorage(usersFile, sessionsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:            make(map[string]*internal.User),
		sessions:         make(map[string][]internal.Session),
		usersFile:        usersFile,
		sessionsFile:     sessionsFile,
		saveUsersChan:    make(chan struct{}, 1),
		saveSessionsChan: make(chan struct{}, 1),
		shutdownChan:     make(chan struct{}),
		saveDelay:        500 * time.Millisecond,
		logger:           logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadSessions(); err != nil {
		logger.Errorf("storage: failed to load sessions: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers, "users")
	go s.saveWorker(s.saveSessionsChan, s.saveSessions, "sessions")

	return s, nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
	}
	return nil
}

func (s *FileStorage) loadSessions() error {
	file, err := os.Open(s.sessionsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var sessions []internal.Session
	if err := json.NewDecoder(file).Decode(&sessions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range sessions {
		s.sessions[sess.UserID] = append(s.sessions[sess.UserID], sess)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveSessions() error {
	s.mu.RLock()
	sessions := make([]internal.Session, 0)
	for _, list := range s.sessions {
		sessions = append(sessions, list...)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.sessionsFile, sessions)
}

func (s *FileStorage) saveWorker(kick <-chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-kick:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveUsers(); err != nil {
		return err
	}
	return s.saveSessions()
}

// --- UserRepository ---

func (s *FileStorage) CreateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return internal.ErrAlreadyExists
	}
	u := *user
	s.users[user.ID] = &u
	s.kick(s.saveUsersChan)
	return nil
}

func (s *FileStorage) UserExists(ctx context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID]
	return ok, nil
}

func (s *FileStorage) ListUserIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids, nil
}

// --- SessionRepository ---

func (s *FileStorage) SaveSession(ctx context.Context, session *internal.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[session.UserID]; !ok {
		return internal.ErrUserNotFound
	}
	s.sessions[session.UserID] = append(s.sessions[session.UserID], *session)
	s.kick(s.saveSessionsChan)
	return nil
}

func (s *FileStorage) ListSessions(ctx context.Context, userID string) ([]internal.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[userID]; !ok {
		return nil, internal.ErrUserNotFound
	}
	sessions := make([]internal.Session, len(s.sessions[userID]))
	copy(sessions, s.sessions[userID])
	return sessions, nil
}

func (s *FileStorage) kick(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// --- Compile-time assertions ---
var _ Store = (*FileStorage)(nil)
