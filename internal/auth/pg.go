package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGUserStore persists accounts in Postgres.
type PGUserStore struct{ db *pgxpool.Pool }

func NewPGUserStore(db *pgxpool.Pool) *PGUserStore { return &PGUserStore{db: db} }

func (s *PGUserStore) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1,$2,LOWER($3),$4,NOW())
	`, u.ID, u.Name, u.Email, u.PasswordHash)
	if err != nil {
		// UNIQUE(email) is the only realistic violation here
		return ErrAlreadyExist
	}
	return nil
}

func (s *PGUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = LOWER($1)
	`, email)
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

var _ UserStore = (*PGUserStore)(nil)
