package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vedran77/circle/internal/config"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed structure and expiry are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenService issues and verifies signed session tokens. It holds only the
// immutable signing configuration and is safe for concurrent use.
type TokenService struct {
	method     *jwt.SigningMethodHMAC
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewTokenService(cfg config.TokenConfig) (*TokenService, error) {
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", cfg.Algorithm)
	}
	if cfg.Secret == "" {
		return nil, errors.New("token secret is empty")
	}
	return &TokenService{
		method:     method,
		secret:     []byte(cfg.Secret),
		defaultTTL: cfg.TTL(),
		now:        time.Now,
	}, nil
}

// WithClock returns a copy of the service reading time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue signs a token for subject valid for ttl. A non-positive ttl is
// honoured as is, producing a token that is already expired.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
	}
	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// IssueDefault signs a token using the configured lifetime.
func (s *TokenService) IssueDefault(subject string) (string, error) {
	return s.Issue(subject, s.defaultTTL)
}

func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &rc, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil || !token.Valid || rc.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{Subject: rc.Subject, ExpiresAt: rc.ExpiresAt.Time}, nil
}
