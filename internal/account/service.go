package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crucial707/account-service/internal/auth"
	"github.com/crucial707/account-service/internal/metrics"
	"github.com/crucial707/account-service/internal/models"
	"github.com/crucial707/account-service/internal/repo"
)

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}

type TokenIssuer interface {
	Issue(subject string) (auth.Token, error)
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service runs the signup, login and profile flows on top of the credential store.
type Service struct {
	users  repo.UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	log    *slog.Logger
}

func NewService(users repo.UserStore, hasher PasswordHasher, tokens TokenIssuer, log *slog.Logger) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Signup registers a new user. The returned user still carries the hash; callers expose Profile only.
func (s *Service) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	in.Email = models.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		metrics.IncSignup(metrics.ResultInvalid)
		return models.User{}, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		metrics.IncSignup(metrics.ResultDuplicate)
		return models.User{}, ErrDuplicateEmail
	case !errors.Is(err, repo.ErrNotFound):
		metrics.IncSignup(metrics.ResultError)
		return models.User{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		metrics.IncSignup(metrics.ResultError)
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
	})
	if errors.Is(err, repo.ErrDuplicateEmail) {
		metrics.IncSignup(metrics.ResultDuplicate)
		return models.User{}, ErrDuplicateEmail
	}
	if err != nil {
		metrics.IncSignup(metrics.ResultError)
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	metrics.IncSignup(metrics.ResultOK)
	s.log.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return user, nil
}

// Login checks credentials and issues an access token for the user.
func (s *Service) Login(ctx context.Context, in LoginInput) (auth.Token, error) {
	in.Email = models.NormalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		metrics.IncLogin(metrics.ResultInvalid)
		return auth.Token{}, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrNotFound) {
		metrics.IncLogin(metrics.ResultRejected)
		s.log.InfoContext(ctx, "login rejected", "reason", "unknown email")
		return auth.Token{}, ErrUserNotFound
	}
	if err != nil {
		metrics.IncLogin(metrics.ResultError)
		return auth.Token{}, fmt.Errorf("lookup email: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		metrics.IncLogin(metrics.ResultError)
		return auth.Token{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		metrics.IncLogin(metrics.ResultRejected)
		s.log.InfoContext(ctx, "login rejected", "reason", "password mismatch", "user_id", user.ID)
		return auth.Token{}, ErrBadCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.IncLogin(metrics.ResultError)
		return auth.Token{}, fmt.Errorf("issue token: %w", err)
	}

	metrics.IncLogin(metrics.ResultOK)
	return tok, nil
}

// Profile loads the user named by a verified token subject.
// A subject that no longer resolves is treated as an invalid token.
func (s *Service) Profile(ctx context.Context, subject string) (models.User, error) {
	user, err := s.users.FindByID(ctx, subject)
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, auth.ErrInvalidToken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user %s: %w", subject, err)
	}
	return user, nil
}
