package user_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow/eventflow-api/internal/auth"
	"github.com/eventflow/eventflow-api/internal/model"
	"github.com/eventflow/eventflow-api/internal/repository"
	"github.com/eventflow/eventflow-api/internal/service/user"
)

const testSecret = "test-secret"

// fakeStore is an in-memory user.Store with the same contract as
// repository.UserRepo.
type fakeStore struct {
	nextID uint64
	byID   map[uint64]model.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, byID: map[uint64]model.User{}}
}

func (s *fakeStore) Create(_ context.Context, email, passwordHash, firstName, lastName string, phone *string, role string) (uint64, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	id := s.nextID
	s.nextID++
	now := time.Now().UTC()
	s.byID[id] = model.User{
		ID: id, Email: email, PasswordHash: passwordHash,
		FirstName: firstName, LastName: lastName, Phone: phone, Role: role,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) UpdateProfile(_ context.Context, id uint64, patch repository.ProfilePatch) error {
	u, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		u.Phone = patch.Phone
	}
	u.UpdatedAt = time.Now().UTC()
	s.byID[id] = u
	return nil
}

func newService(store user.Store) *user.Service {
	// bcrypt.MinCost keeps the suite fast; cost is a config concern.
	return user.New(store, testSecret, 4)
}

func validInput() user.CreateAccountInput {
	return user.CreateAccountInput{
		Email:     "alice@example.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Lee",
	}
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newService(store)

	account, err := svc.CreateAccount(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.Equal(t, "Alice", account.FirstName)
	assert.Equal(t, model.RoleUser, account.Role)
	assert.NotZero(t, account.ID)

	// The stored credential is a hash, never the plaintext.
	stored := store.byID[account.ID]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}

func TestCreateAccount_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore())
	in := validInput()
	in.Email = "  Alice@Example.COM "

	account, err := svc.CreateAccount(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", account.Email)
}

func TestCreateAccount_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*user.CreateAccountInput)
		wantField string
	}{
		{"bad email", func(in *user.CreateAccountInput) { in.Email = "not-an-email" }, "email"},
		{"empty email", func(in *user.CreateAccountInput) { in.Email = "" }, "email"},
		{"short password", func(in *user.CreateAccountInput) { in.Password = "12345" }, "password"},
		{"missing first name", func(in *user.CreateAccountInput) { in.FirstName = "  " }, "first_name"},
		{"missing last name", func(in *user.CreateAccountInput) { in.LastName = "" }, "last_name"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newService(newFakeStore())
			in := validInput()
			tt.mutate(&in)

			_, err := svc.CreateAccount(context.Background(), in)
			var ve *user.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestCreateAccount_Duplicate(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore())
	_, err := svc.CreateAccount(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.CreateAccount(context.Background(), validInput())
	assert.ErrorIs(t, err, user.ErrDuplicateAccount)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore())
	created, err := svc.CreateAccount(context.Background(), validInput())
	require.NoError(t, err)

	account, err := svc.Authenticate(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, account.ID)

	// Unknown email and wrong password must be indistinguishable.
	_, errWrongPass := svc.Authenticate(context.Background(), "alice@example.com", "wrongpass")
	_, errNoUser := svc.Authenticate(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, errWrongPass, user.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, user.ErrInvalidCredentials)
}

func TestIssueToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore())
	account, err := svc.CreateAccount(context.Background(), validInput())
	require.NoError(t, err)

	token, err := svc.IssueToken(account)
	require.NoError(t, err)

	id, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, id.ID)
	assert.Equal(t, account.Email, id.Email)
	assert.Equal(t, account.Role, id.Role)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore())
	account, err := svc.CreateAccount(context.Background(), validInput())
	require.NoError(t, err)

	first := "Alicia"
	phone := "555-0100"
	updated, err := svc.UpdateProfile(context.Background(), account.ID, repository.ProfilePatch{
		FirstName: &first,
		Phone:     &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "Lee", updated.LastName, "absent fields stay unchanged")
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "555-0100", *updated.Phone)
}

func TestUpdateProfile_EmptyPatchIsRead(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore())
	account, err := svc.CreateAccount(context.Background(), validInput())
	require.NoError(t, err)

	got, err := svc.UpdateProfile(context.Background(), account.ID, repository.ProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, account, got)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore())
	first := "X"
	_, err := svc.UpdateProfile(context.Background(), 999, repository.ProfilePatch{FirstName: &first})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestFindByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore())
	_, err := svc.FindByID(context.Background(), 12345)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
