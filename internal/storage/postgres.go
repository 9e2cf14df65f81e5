package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/activitytracker/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, user *internal.User) error {
	// Uniqueness rides on the primary key so concurrent registrations
	// for the same id race safely.
	ct, err := p.pool.Exec(ctx, `INSERT INTO users (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		user.ID, user.Name)
	if err != nil {
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return internal.ErrAlreadyExists
	}
	return nil
}

func (p *PostgresStorage) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	row := p.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID)
	if err := row.Scan(&exists); err != nil {
		p.logger.Errorf("failed to check user existence: %v", err)
		return false, err
	}
	return exists, nil
}

func (p *PostgresStorage) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT id FROM users`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			p.logger.Errorf("failed to scan user id: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- SessionRepository ---

func (p *PostgresStorage) SaveSession(ctx context.Context, session *internal.Session) error {
	exists, err := p.UserExists(ctx, session.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return internal.ErrUserNotFound
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO sessions (user_id, login_time, logout_time) VALUES ($1, $2, $3)`,
		session.UserID, session.LoginTime, session.LogoutTime)
	if err != nil {
		p.logger.Errorf("failed to insert session: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListSessions(ctx context.Context, userID string) ([]internal.Session, error) {
	exists, err := p.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrUserNotFound
	}

	rows, err := p.pool.Query(ctx, `SELECT user_id, login_time, logout_time FROM sessions WHERE user_id = $1 ORDER BY login_time`, userID)
	if err != nil {
		p.logger.Errorf("failed to query sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	sessions := []internal.Session{}
	for rows.Next() {
		var s internal.Session
		if err := rows.Scan(&s.UserID, &s.LoginTime, &s.LogoutTime); err != nil {
			p.logger.Errorf("failed to scan session: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStorage)(nil)
