package repositories

import (
	"context"
	"database/sql"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r UserRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, phone, role)
		VALUES (?, ?, ?, ?, ?)
	`, u.Name, u.Email, u.PasswordHash, u.Phone, string(u.Role))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FindByEmail returns sql.ErrNoRows unchanged when the email is unknown;
// the auth service maps both that and a hash mismatch to one uniform
// unauthorized error.
func (r UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var (
		u    models.User
		role string
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, phone, role
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &role)
	if err != nil {
		return models.User{}, err
	}
	u.Role = models.ParseRole(role)
	return u, nil
}
