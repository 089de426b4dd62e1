package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/account-service/internal/auth"
	"github.com/crucial707/account-service/internal/logging"
	"github.com/crucial707/account-service/internal/models"
	"github.com/crucial707/account-service/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// countingHasher records how often each primitive is reached.
type countingHasher struct {
	inner    *auth.PasswordHasher
	hashes   int
	verifies int
}

func (h *countingHasher) Hash(ctx context.Context, pw string) (string, error) {
	h.hashes++
	return h.inner.Hash(ctx, pw)
}

func (h *countingHasher) Verify(ctx context.Context, pw, hash string) (bool, error) {
	h.verifies++
	return h.inner.Verify(ctx, pw, hash)
}

// failingStore returns err from every call.
type failingStore struct{ err error }

func (s failingStore) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, s.err
}
func (s failingStore) FindByID(context.Context, string) (models.User, error) {
	return models.User{}, s.err
}
func (s failingStore) Create(context.Context, models.User) (models.User, error) {
	return models.User{}, s.err
}

// racingStore reports no existing user but loses the insert to a concurrent signup.
type racingStore struct{ failingStore }

func (racingStore) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, repo.ErrNotFound
}
func (racingStore) Create(context.Context, models.User) (models.User, error) {
	return models.User{}, repo.ErrDuplicateEmail
}

var policy = auth.Policy{Secret: []byte("test-secret"), TTL: 900 * time.Second, Issuer: "test"}

func newTestService(t *testing.T) (*Service, *countingHasher, *auth.TokenService) {
	t.Helper()
	hasher := &countingHasher{inner: auth.NewPasswordHasherWithCost(bcrypt.MinCost, 2)}
	tokens := auth.NewTokenService(policy)
	return NewService(repo.NewMemoryUserRepo(), hasher, tokens, logging.Discard()), hasher, tokens
}

func TestService_SignupThenLogin(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	inputs := []SignupInput{
		{Email: "a@b.com", Name: "A", Password: "pw123456"},
		{Email: "x.y+tag@example.org", Name: "Some One", Password: "p"},
		{Email: "u@v.io", Name: "ü", Password: strings.Repeat("z", 72)},
	}
	for _, in := range inputs {
		user, err := svc.Signup(ctx, in)
		require.NoError(t, err, "signup %s", in.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, in.Password, user.PasswordHash)

		tok, err := svc.Login(ctx, LoginInput{Email: in.Email, Password: in.Password})
		require.NoError(t, err, "login %s", in.Email)
		assert.Equal(t, int64(900), tok.ExpiresIn)
		assert.Equal(t, "Bearer", tok.TokenType)

		sub, err := tokens.Verify(tok.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, sub)
	}
}

func TestService_Signup_Validation(t *testing.T) {
	svc, hasher, _ := newTestService(t)

	cases := []struct {
		name  string
		in    SignupInput
		field string
	}{
		{"missing email", SignupInput{Name: "A", Password: "pw"}, "email"},
		{"missing name", SignupInput{Email: "a@b.com", Password: "pw"}, "name"},
		{"blank name", SignupInput{Email: "a@b.com", Name: "   ", Password: "pw"}, "name"},
		{"missing password", SignupInput{Email: "a@b.com", Name: "A"}, "password"},
		{"bad email", SignupInput{Email: "not-an-email", Name: "A", Password: "pw"}, "email"},
		{"long password", SignupInput{Email: "a@b.com", Name: "A", Password: strings.Repeat("x", 73)}, "password"},
		{"long multibyte password", SignupInput{Email: "m@b.com", Name: "M", Password: strings.Repeat("ü", 40)}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.in)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
	assert.Zero(t, hasher.hashes, "validation failures must not reach the hasher")
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "a@b.com", Name: "A", Password: "pw123456"})
	require.NoError(t, err)

	for _, in := range []SignupInput{
		{Email: "a@b.com", Name: "A", Password: "pw123456"},
		{Email: "a@b.com", Name: "Other", Password: "different"},
		{Email: "  A@B.COM ", Name: "Caps", Password: "x"},
	} {
		_, err := svc.Signup(ctx, in)
		assert.ErrorIs(t, err, ErrDuplicateEmail, "input %+v", in)
	}
}

func TestService_Signup_RacingDuplicate(t *testing.T) {
	hasher := &countingHasher{inner: auth.NewPasswordHasherWithCost(bcrypt.MinCost, 1)}
	svc := NewService(racingStore{}, hasher, auth.NewTokenService(policy), logging.Discard())

	_, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.com", Name: "A", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestService_Signup_StoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	hasher := &countingHasher{inner: auth.NewPasswordHasherWithCost(bcrypt.MinCost, 1)}
	svc := NewService(failingStore{err: boom}, hasher, auth.NewTokenService(policy), logging.Discard())

	_, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.com", Name: "A", Password: "pw"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.Zero(t, hasher.hashes)
}

func TestService_Login_UnknownEmailSkipsVerify(t *testing.T) {
	svc, hasher, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@b.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, hasher.verifies, "unknown email must not reach password comparison")
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, hasher, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "a@b.com", Name: "A", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrBadCredentials)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, hasher.verifies)
}

func TestService_Login_Validation(t *testing.T) {
	svc, hasher, _ := newTestService(t)

	for _, in := range []LoginInput{{}, {Email: "a@b.com"}, {Password: "pw"}} {
		_, err := svc.Login(context.Background(), in)
		assert.ErrorIs(t, err, ErrValidation, "input %+v", in)
	}
	assert.Zero(t, hasher.verifies)
}

func TestService_Login_CaseInsensitiveEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "Mixed@Case.com", Name: "M", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "mixed@case.COM", Password: "pw"})
	assert.NoError(t, err)
}

func TestService_Login_MalformedStoredHash(t *testing.T) {
	store := repo.NewMemoryUserRepo()
	_, err := store.Create(context.Background(), models.User{Email: "a@b.com", Name: "A", PasswordHash: "corrupt"})
	require.NoError(t, err)

	hasher := &countingHasher{inner: auth.NewPasswordHasherWithCost(bcrypt.MinCost, 1)}
	svc := NewService(store, hasher, auth.NewTokenService(policy), logging.Discard())

	_, err = svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrHashing)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Profile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, SignupInput{Email: "a@b.com", Name: "A", Password: "pw"})
	require.NoError(t, err)

	user, err := svc.Profile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "A", user.Name)

	_, err = svc.Profile(ctx, "deleted-or-unknown")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"name": "is required", "email": "is required"}}
	assert.Equal(t, "validation failed: email is required, name is required", err.Error())
}
