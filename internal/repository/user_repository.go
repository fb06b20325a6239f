package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/eventflow/eventflow-api/internal/model"
)

// UserRepo issues parameterized queries against the `users` table. Every
// statement binds values as placeholders; no query text is ever built from
// caller input except the whitelisted column names in UpdateProfile.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,first_name,last_name,phone,role,created_at,updated_at"

// Create inserts a user row and returns its id. The email must already be
// normalized and the password already hashed by the caller.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, firstName, lastName string, phone *string, role string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, first_name, last_name, phone, role) VALUES (?,?,?,?,?,?)",
		email, passwordHash, firstName, lastName, phone, role)
	if err != nil {
		// MySQL 1062: duplicate entry for the unique email index.
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

// GetByEmail fetches a full user row, hash included, by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a full user row by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// ProfilePatch carries the mutable profile fields. Nil means "leave
// unchanged". Email, password and role are deliberately absent; they are
// not mutable through this path.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil
}

// UpdateProfile applies the non-nil fields of the patch to the user row.
// The SET list is assembled from a fixed set of column literals; patch
// values are always bound as parameters. An empty patch is a no-op.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, patch ProfilePatch) error {
	var (
		sets []string
		args []any
	)
	if patch.FirstName != nil {
		sets = append(sets, "first_name=?")
		args = append(args, *patch.FirstName)
	}
	if patch.LastName != nil {
		sets = append(sets, "last_name=?")
		args = append(args, *patch.LastName)
	}
	if patch.Phone != nil {
		sets = append(sets, "phone=?")
		args = append(args, *patch.Phone)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?",
		args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such user" from "same values written": MySQL
		// reports zero affected rows for both, so confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
