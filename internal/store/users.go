package store

import (
	"context"
	"database/sql"
)

// Admin is the stored admin account. Password holds a bcrypt hash.
type Admin struct {
	ID       int
	Email    string
	Password string
}

// GetAdminByEmail returns nil, nil when no admin has that email.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT id, email, password FROM users WHERE email = ?`, email)

	var a Admin
	if err := row.Scan(&a.ID, &a.Email, &a.Password); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// UpsertAdmin stores the admin account, replacing the password hash of an
// existing one.
func (s *Store) UpsertAdmin(ctx context.Context, email, hashedPassword string) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO users (email, password) VALUES (?, ?)
		ON CONFLICT (email) DO UPDATE SET password = excluded.password`, email, hashedPassword)
	return err
}
