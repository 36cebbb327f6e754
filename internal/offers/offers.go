// Package offers persists skill-exchange offers.
package offers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("offer not found")

type Offer struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Title     string     `json:"title"`
	Detail    string     `json:"detail"`
	Skill     string     `json:"skill"`
	PointCost int        `json:"pointCost"`
	Duration  int        `json:"duration"` // days
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, o Offer) (Offer, error) {
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO offers (id, user_email, title, detail, skill, point_cost, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		o.ID, o.Email, o.Title, o.Detail, o.Skill, o.PointCost, o.Duration,
	).Scan(&o.CreatedAt)
	if err != nil {
		return Offer{}, fmt.Errorf("insert offer: %w", err)
	}
	return o, nil
}

func (s *Store) Get(ctx context.Context, id string) (Offer, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, user_email, title, detail, skill, point_cost, duration,
		       created_at, updated_at
		FROM offers WHERE id = $1`,
		id,
	)
	return scanOffer(row)
}

func (s *Store) List(ctx context.Context) ([]Offer, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_email, title, detail, skill, point_cost, duration,
		       created_at, updated_at
		FROM offers ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// Update applies a partial edit; nil fields keep their stored values.
func (s *Store) Update(ctx context.Context, id string, title, detail, skill *string, pointCost, duration *int) (Offer, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE offers SET
			title = COALESCE($2, title),
			detail = COALESCE($3, detail),
			skill = COALESCE($4, skill),
			point_cost = COALESCE($5, point_cost),
			duration = COALESCE($6, duration),
			updated_at = NOW()
		WHERE id = $1`,
		id, title, detail, skill, pointCost, duration,
	)
	if err != nil {
		return Offer{}, fmt.Errorf("update offer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Offer{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (Offer, error) {
	var o Offer
	var updated sql.NullTime
	err := row.Scan(
		&o.ID, &o.Email, &o.Title, &o.Detail, &o.Skill, &o.PointCost,
		&o.Duration, &o.CreatedAt, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Offer{}, ErrNotFound
	}
	if err != nil {
		return Offer{}, fmt.Errorf("scan offer: %w", err)
	}
	if updated.Valid {
		o.UpdatedAt = &updated.Time
	}
	return o, nil
}
