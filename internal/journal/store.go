package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("journal not found")

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, j Journal) (Journal, error) {
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO journals (id, user_email, title, description, date, bg_color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		j.ID, j.Email, j.Title, j.Description, j.Date, j.BgColor,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return Journal{}, fmt.Errorf("insert journal: %w", err)
	}
	return j, nil
}

func (s *Store) Get(ctx context.Context, id string) (Journal, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, user_email, title, description, date, bg_color,
		       emotion_analysis, created_at, updated_at
		FROM journals WHERE id = $1`,
		id,
	)
	return scanJournal(row)
}

// ListByEmail returns the user's journals, newest first, with pagination.
func (s *Store) ListByEmail(ctx context.Context, email string, skip, limit int) ([]Journal, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_email, title, description, date, bg_color,
		       emotion_analysis, created_at, updated_at
		FROM journals WHERE user_email = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`,
		email, skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select journals: %w", err)
	}
	defer rows.Close()

	var journals []Journal
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

// Update applies a partial edit; nil fields keep their stored values.
func (s *Store) Update(ctx context.Context, id string, title, description, date, bgColor *string) (Journal, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE journals SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			date = COALESCE($4, date),
			bg_color = COALESCE($5, bg_color),
			updated_at = NOW()
		WHERE id = $1`,
		id, title, description, date, bgColor,
	)
	if err != nil {
		return Journal{}, fmt.Errorf("update journal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Journal{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM journals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetEmotionAnalysis stores the classifier result on the journal entry.
func (s *Store) SetEmotionAnalysis(ctx context.Context, id string, a EmotionAnalysis) (Journal, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return Journal{}, fmt.Errorf("marshal analysis: %w", err)
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE journals SET emotion_analysis = $2, updated_at = NOW()
		WHERE id = $1`,
		id, payload,
	)
	if err != nil {
		return Journal{}, fmt.Errorf("update analysis: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Journal{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournal(row rowScanner) (Journal, error) {
	var j Journal
	var analysis []byte
	err := row.Scan(
		&j.ID, &j.Email, &j.Title, &j.Description, &j.Date, &j.BgColor,
		&analysis, &j.CreatedAt, &j.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Journal{}, ErrNotFound
	}
	if err != nil {
		return Journal{}, fmt.Errorf("scan journal: %w", err)
	}

	if len(analysis) > 0 {
		var a EmotionAnalysis
		if err := json.Unmarshal(analysis, &a); err != nil {
			return Journal{}, fmt.Errorf("decode analysis: %w", err)
		}
		j.EmotionAnalysis = &a
	}
	return j, nil
}
