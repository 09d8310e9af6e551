package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-contacts/pkg/types"
)

const (
	// DefaultIssuer is stamped on tokens when no issuer is configured.
	DefaultIssuer = "go-contacts"
	// DefaultTokenTTL is the lifetime of issued access tokens.
	DefaultTokenTTL = 24 * time.Hour

	msgInvalidToken = "Invalid or expired token"
)

// ErrSigningKeyRequired indicates the token manager has no signing key.
var ErrSigningKeyRequired = errors.New("go-contacts: token signing key required")

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenConfig wires the token manager.
type TokenConfig struct {
	SigningKey string
	Issuer     string
	TTL        time.Duration
	Clock      types.Clock
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	key    []byte
	issuer string
	ttl    time.Duration
	clock  types.Clock
}

// NewTokenManager validates cfg and returns a token manager.
func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	key := strings.TrimSpace(cfg.SigningKey)
	if key == "" {
		return nil, ErrSigningKeyRequired
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = DefaultIssuer
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &TokenManager{key: []byte(key), issuer: issuer, ttl: ttl, clock: clock}, nil
}

var _ types.TokenIssuer = (*TokenManager)(nil)

// Issue implements types.TokenIssuer.
func (m *TokenManager) Issue(_ context.Context, account types.Account) (types.AccessToken, error) {
	issuedAt := m.clock.Now()
	expiresAt := issuedAt.Add(m.ttl)
	claims := Claims{
		Email: account.Email,
		Role:  types.NormalizeRole(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return types.AccessToken{}, err
	}
	return types.AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify parses the token and returns its claims. Any failure is reported as
// unauthorized.
func (m *TokenManager) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, types.Unauthorized(msgInvalidToken)
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, types.Unauthorized(msgInvalidToken)
	}
	return claims, nil
}
