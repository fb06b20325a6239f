// Package user implements the credential service: account creation,
// credential verification, token issuance and profile updates. It is the
// only package that handles stored password hashes; everything it returns
// across its boundary is the hash-free model.Account projection.
package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/eventflow/eventflow-api/internal/auth"
	"github.com/eventflow/eventflow-api/internal/model"
	"github.com/eventflow/eventflow-api/internal/repository"
)

// MinPasswordLen is the registration password policy.
const MinPasswordLen = 6

var (
	// ErrDuplicateAccount signals a registration attempt with an email that
	// is already taken.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound signals a lookup or update of a nonexistent account id.
	ErrNotFound = errors.New("account not found")
)

// ValidationError reports a policy-violating input field. It is the only
// error from this package that carries caller-visible detail.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Store is the slice of the repository the service depends on. It is
// satisfied by *repository.UserRepo and by in-memory fakes in tests.
type Store interface {
	Create(ctx context.Context, email, passwordHash, firstName, lastName string, phone *string, role string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, patch repository.ProfilePatch) error
}

// Service owns credential handling. The signing secret and bcrypt cost are
// fixed at construction; config guarantees the secret is present before a
// Service can exist.
type Service struct {
	store  Store
	secret string
	cost   int
}

func New(store Store, secret string, bcryptCost int) *Service {
	return &Service{store: store, secret: secret, cost: bcryptCost}
}

// CreateAccountInput carries the registration fields.
type CreateAccountInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

func (in *CreateAccountInput) validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if !emailRe.MatchString(in.Email) {
		return &ValidationError{Field: "email", Msg: "must be a valid email address"}
	}
	if len(in.Password) < MinPasswordLen {
		return &ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", MinPasswordLen)}
	}
	if in.FirstName == "" {
		return &ValidationError{Field: "first_name", Msg: "is required"}
	}
	if in.LastName == "" {
		return &ValidationError{Field: "last_name", Msg: "is required"}
	}
	return nil
}

// CreateAccount validates the input, hashes the password and persists a new
// account with the "user" role. The returned Account never contains the
// hash. Duplicate emails map to ErrDuplicateAccount.
func (s *Service) CreateAccount(ctx context.Context, in CreateAccountInput) (model.Account, error) {
	if err := in.validate(); err != nil {
		return model.Account{}, err
	}
	hash, err := auth.HashPassword(in.Password, s.cost)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.store.Create(ctx, in.Email, hash, in.FirstName, in.LastName, in.Phone, model.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.Account{}, ErrDuplicateAccount
		}
		return model.Account{}, fmt.Errorf("create account: %w", err)
	}
	return s.FindByID(ctx, id)
}

// FindByID returns the public projection of an account.
func (s *Service) FindByID(ctx context.Context, id uint64) (model.Account, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Account{}, ErrNotFound
		}
		return model.Account{}, err
	}
	return u.Account(), nil
}

// Authenticate verifies an email/password pair and returns the matching
// account. Unknown emails and wrong passwords are indistinguishable; both
// return ErrInvalidCredentials. The stored hash never leaves this method.
func (s *Service) Authenticate(ctx context.Context, email, password string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Account{}, ErrInvalidCredentials
		}
		return model.Account{}, err
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return model.Account{}, ErrInvalidCredentials
	}
	return u.Account(), nil
}

// IssueToken signs a seven-day token asserting the account's identity.
// The role claim is embedded at issuance, so a role change takes effect
// on the next login at the latest.
func (s *Service) IssueToken(a model.Account) (string, error) {
	return auth.NewToken(s.secret, auth.Identity{ID: a.ID, Email: a.Email, Role: a.Role})
}

// UpdateProfile applies a partial update to the mutable profile fields and
// returns the fresh account. An empty patch is a plain read.
func (s *Service) UpdateProfile(ctx context.Context, id uint64, patch repository.ProfilePatch) (model.Account, error) {
	if !patch.Empty() {
		if err := s.store.UpdateProfile(ctx, id, patch); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return model.Account{}, ErrNotFound
			}
			return model.Account{}, err
		}
	}
	return s.FindByID(ctx, id)
}
