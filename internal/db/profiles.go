package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Profile kinds
const (
	KindResume         = "resume"
	KindJobDescription = "job_description"
	KindProfile        = "profile"
)

// DefaultListLimit caps ListProfiles when no limit is given
const DefaultListLimit = 50

var (
	// ErrNotFound is returned when no profile has the requested id
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidKind is returned for kinds other than the ones above
	ErrInvalidKind = errors.New("invalid profile kind")
)

// Profile is a stored resume, job description or arbitrary profile payload
type Profile struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// ValidKind reports whether kind may be stored
func ValidKind(kind string) bool {
	switch kind {
	case KindResume, KindJobDescription, KindProfile:
		return true
	}
	return false
}

// SaveProfile inserts a profile with a fresh id and returns the stored row
func (db *DB) SaveProfile(ctx context.Context, kind, name string, payload any) (*Profile, error) {
	if !ValidKind(kind) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile payload: %w", err)
	}

	p := &Profile{ID: uuid.New(), Kind: kind, Name: name, Payload: data}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profiles (id, kind, name, payload)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		p.ID, p.Kind, p.Name, data,
	).Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// GetProfile returns the profile with the given id
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, name, payload, created_at FROM profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Kind, &p.Name, &p.Payload, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// ListProfiles returns profiles newest first, optionally filtered by kind
func (db *DB) ListProfiles(ctx context.Context, kind string, limit int) ([]Profile, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, kind, name, payload, created_at FROM profiles
		 WHERE ($1::text = '' OR kind = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Kind, &p.Name, &p.Payload, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes the profile with the given id
func (db *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
