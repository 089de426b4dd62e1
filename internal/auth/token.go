package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType is the only scheme issued by the service.
const TokenType = "Bearer"

// ErrInvalidToken covers bad signatures, malformed tokens and expiry alike.
var ErrInvalidToken = errors.New("invalid token")

// Policy is fixed at construction and shared read-only by all requests.
type Policy struct {
	Secret []byte
	TTL    time.Duration
	// Issuer is written to "iss" and checked on verify when non-empty.
	Issuer string
}

// Token is what login hands back to the client.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	ExpiresAt   time.Time
}

type TokenService struct {
	policy Policy
	now    func() time.Time
}

type Option func(*TokenService)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(policy Policy, opts ...Option) *TokenService {
	s := &TokenService{policy: policy, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenService) TTL() time.Duration {
	return s.policy.TTL
}

// Issue signs an HS256 token for subject that expires after the policy TTL.
func (s *TokenService) Issue(subject string) (Token, error) {
	now := s.now()
	expiresAt := now.Add(s.policy.TTL)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.policy.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.policy.Secret)
	if err != nil {
		return Token{}, err
	}

	return Token{
		AccessToken: signed,
		TokenType:   TokenType,
		ExpiresIn:   int64(s.policy.TTL / time.Second),
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// Verify returns the token subject. Any failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.policy.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.policy.Issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.policy.Secret, nil
	}, opts...)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
