package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"bloom-wellness-backend/internal/cycle"
)

var ErrNotFound = errors.New("user not found")

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, u User, passwordHash string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO users
			(email, password_hash, first_name, last_name, phone_number,
			 bio, profession, university, location, age, coins,
			 skills, interests, canvas_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12, $13)`,
		u.Email, passwordHash, u.FirstName, u.LastName, u.PhoneNumber,
		u.Bio, u.Profession, u.University, u.Location, u.Age,
		pq.Array(u.Skills), pq.Array(u.Interests), u.CanvasToken,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, email string) (User, error) {
	var u User
	err := s.DB.QueryRowContext(ctx, `
		SELECT email, first_name, last_name, COALESCE(phone_number, ''),
		       COALESCE(bio, ''), COALESCE(profession, ''),
		       COALESCE(university, ''), COALESCE(location, ''),
		       COALESCE(age, 0), coins, skills, interests,
		       COALESCE(canvas_token, ''), created_at, updated_at
		FROM users WHERE email = $1`,
		email,
	).Scan(
		&u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.Bio, &u.Profession, &u.University, &u.Location,
		&u.Age, &u.Coins, pq.Array(&u.Skills), pq.Array(&u.Interests),
		&u.CanvasToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (s *Store) Update(ctx context.Context, u User) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE users SET
			first_name = $2, last_name = $3, phone_number = $4,
			bio = $5, profession = $6, university = $7, location = $8,
			age = $9, skills = $10, interests = $11, canvas_token = $12,
			updated_at = NOW()
		WHERE email = $1`,
		u.Email, u.FirstName, u.LastName, u.PhoneNumber,
		u.Bio, u.Profession, u.University, u.Location,
		u.Age, pq.Array(u.Skills), pq.Array(u.Interests), u.CanvasToken,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) Delete(ctx context.Context, email string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return checkAffected(res)
}

// PasswordHash returns the stored bcrypt hash for login checks.
func (s *Store) PasswordHash(ctx context.Context, email string) (string, error) {
	var hash string
	err := s.DB.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE email = $1`, email,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select password hash: %w", err)
	}
	return hash, nil
}

// ListQAPairs returns the user's raw question/answer pairs.
func (s *Store) ListQAPairs(ctx context.Context, email string) ([]QAPair, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT question, answer FROM qa_pairs
		WHERE user_email = $1 ORDER BY id`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("select qa pairs: %w", err)
	}
	defer rows.Close()

	var pairs []QAPair
	for rows.Next() {
		var p QAPair
		if err := rows.Scan(&p.Question, &p.Answer); err != nil {
			return nil, fmt.Errorf("scan qa pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// ReplaceQAPairs swaps the user's full QA-pair set in one transaction.
func (s *Store) ReplaceQAPairs(ctx context.Context, email string, pairs []QAPair) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM qa_pairs WHERE user_email = $1`, email); err != nil {
		return fmt.Errorf("clear qa pairs: %w", err)
	}
	for _, p := range pairs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO qa_pairs (user_email, question, answer) VALUES ($1, $2, $3)`,
			email, p.Question, p.Answer); err != nil {
			return fmt.Errorf("insert qa pair: %w", err)
		}
	}
	return tx.Commit()
}

// Facts returns the user's QA pairs mapped to typed cycle facts.
func (s *Store) Facts(ctx context.Context, email string) ([]cycle.Fact, error) {
	pairs, err := s.ListQAPairs(ctx, email)
	if err != nil {
		return nil, err
	}
	return FactsFromPairs(pairs), nil
}

func (s *Store) ListEvents(ctx context.Context, email string) ([]Event, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, start_at, end_at, color FROM events
		WHERE user_email = $1 ORDER BY start_at`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Start, &e.End, &e.Color); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) AppendEvent(ctx context.Context, email string, e Event) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO events (id, user_email, title, start_at, end_at, color)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, email, e.Title, e.Start, e.End, e.Color,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
