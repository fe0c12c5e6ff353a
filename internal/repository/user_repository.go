package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/pet-hostel/internal/model"
	"github.com/iliyamo/pet-hostel/internal/utils"
)

const userColumns = "id, name, email, password, mobile, dob, address, role, created_at, updated_at"

// UserRepo mirrors the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a freshly hashed password and returns the
// new id. Duplicate emails map to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u model.User, password string, cost int) (uint64, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password, mobile, dob, address, role) VALUES (?,?,?,?,?,?,?)",
		u.Name, u.Email, hash, u.Mobile, nullTime(u.Dob), u.Address, u.Role)
	if err != nil {
		// 1062 = ER_DUP_ENTRY on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// ListByRole returns all users holding the given role, without
// password hashes exposed beyond this layer.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE role=? ORDER BY id", role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateProfile rewrites a user's profile fields. The role argument
// pins the statement to rows of that role so a staff update cannot
// touch a customer record and vice versa. ErrNotFound when no row of
// that role matches.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, role, name, mobile string, dob *time.Time, address, email string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, mobile=?, dob=?, address=?, email=? WHERE id=? AND role=?",
		name, mobile, nullTime(dob), address, strings.ToLower(strings.TrimSpace(email)), id, role)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish "no such user" from "update was a no-op"
		if _, err := r.get(ctx, "SELECT "+userColumns+" FROM users WHERE id=? AND role=? LIMIT 1", id, role); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePassword stores a new password hash for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET password=? WHERE id=?", hash, id)
	return err
}

// DeleteByRole removes a user only when they hold the given role. It
// reports whether a row was removed.
func (r *UserRepo) DeleteByRole(ctx context.Context, id uint64, role string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=? AND role=?", id, role)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) get(ctx context.Context, q string, args ...interface{}) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u   model.User
		dob sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Mobile,
		&dob, &u.Address, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if dob.Valid {
		d := dob.Time
		u.Dob = &d
	}
	return u, nil
}
