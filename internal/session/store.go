// Package session provides durable session records backed by Postgres.
// Creating a session for an account deactivates the account's prior active
// sessions inside the same transaction, so at most one active session exists
// per (email, jira_domain) at any time. Expiry is enforced lazily at read
// time; there is no background sweep.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"jiradash/internal/database"
)

var (
	// ErrSessionNotFound is returned when no active session matches the ID.
	ErrSessionNotFound = errors.New("session not found")
)

// Store defines session persistence operations.
type Store interface {
	// Create deactivates the account's active sessions and inserts a new one
	// atomically, returning the fresh record.
	Create(ctx context.Context, key AccountKey, encryptedAPIToken string, ttl time.Duration) (*Session, error)
	// FindActive resolves a session ID to its record. An expired record is
	// deactivated as a side effect and reported as ErrSessionNotFound.
	FindActive(ctx context.Context, sessionID string) (*Session, error)
	// Deactivate marks the session unusable. Idempotent.
	Deactivate(ctx context.Context, sessionID string) error
	// DeleteExpired removes rows whose expiry has passed, returning the count.
	// Nothing schedules this in-process; it exists for operators.
	DeleteExpired(ctx context.Context) (int64, error)
}

type postgresStore struct {
	db database.Service
}

// NewPostgresStore creates a session store backed by the given database.
func NewPostgresStore(db database.Service) Store {
	return &postgresStore{db: db}
}

// Create runs the deactivate-old/insert-new sequence in one transaction.
// Concurrent logins for the same account serialize on the row updates, so
// two active sessions can never coexist for one account key.
func (s *postgresStore) Create(ctx context.Context, key AccountKey, encryptedAPIToken string, ttl time.Duration) (*Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deactivate := `
		UPDATE user_sessions
		SET is_active = FALSE
		WHERE email = $1 AND jira_domain = $2 AND is_active
	`
	if _, err := tx.Exec(ctx, deactivate, key.Email, key.JiraDomain); err != nil {
		return nil, fmt.Errorf("failed to deactivate prior sessions: %w", err)
	}

	insert := `
		INSERT INTO user_sessions (session_id, email, jira_domain, encrypted_api_token, created_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, NOW(), $5, TRUE)
		RETURNING session_id, email, jira_domain, encrypted_api_token, created_at, expires_at, is_active
	`
	expiresAt := time.Now().UTC().Add(ttl)

	sess := &Session{}
	err = tx.QueryRow(ctx, insert, sessionID, key.Email, key.JiraDomain, encryptedAPIToken, expiresAt).Scan(
		&sess.ID,
		&sess.Email,
		&sess.JiraDomain,
		&sess.EncryptedAPIToken,
		&sess.CreatedAt,
		&sess.ExpiresAt,
		&sess.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	return sess, nil
}

// FindActive looks up an active session and enforces wall-clock expiry.
func (s *postgresStore) FindActive(ctx context.Context, sessionID string) (*Session, error) {
	query := `
		SELECT session_id, email, jira_domain, encrypted_api_token, created_at, expires_at, is_active
		FROM user_sessions
		WHERE session_id = $1 AND is_active
	`

	sess := &Session{}
	err := s.db.QueryRow(ctx, query, sessionID).Scan(
		&sess.ID,
		&sess.Email,
		&sess.JiraDomain,
		&sess.EncryptedAPIToken,
		&sess.CreatedAt,
		&sess.ExpiresAt,
		&sess.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		if err := s.Deactivate(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("failed to deactivate expired session: %w", err)
		}
		return nil, ErrSessionNotFound
	}

	return sess, nil
}

// Deactivate marks a session inactive.
func (s *postgresStore) Deactivate(ctx context.Context, sessionID string) error {
	query := `UPDATE user_sessions SET is_active = FALSE WHERE session_id = $1`
	if _, err := s.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}
	return nil
}

// DeleteExpired reclaims storage for long-dead sessions.
func (s *postgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM user_sessions WHERE expires_at < NOW()`
	tag, err := s.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// generateSessionID returns 32 bytes from a cryptographically secure source,
// URL-safe base64 encoded. Not guessable, collision-free in practice.
func generateSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
