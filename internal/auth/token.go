package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/escrowline/backend/internal/config"
)

// TokenKind separates the uses of a signed token. A token is only accepted
// for the kind it was issued for.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
	TokenReset   TokenKind = "reset"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims are carried by every token. Stamp binds reset tokens to the password
// hash they were issued against, so a reset token stops working once used.
type Claims struct {
	Kind  TokenKind `json:"kind"`
	Email string    `json:"email"`
	Stamp string    `json:"stamp,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject of the token.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues and verifies HS256 signed tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    map[TokenKind]time.Duration
	now    func() time.Time
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.TokenSecret),
		issuer: cfg.Issuer,
		ttl: map[TokenKind]time.Duration{
			TokenAccess:  cfg.AccessTokenTTL,
			TokenRefresh: cfg.RefreshTokenTTL,
			TokenReset:   cfg.ResetTokenTTL,
		},
		now: time.Now,
	}
}

// TTL returns the lifetime of tokens of kind.
func (s *TokenService) TTL(kind TokenKind) time.Duration {
	return s.ttl[kind]
}

// Issue signs a token of kind for user. stamp is only used by reset tokens.
func (s *TokenService) Issue(user *User, kind TokenKind, stamp string) (string, error) {
	ttl, ok := s.ttl[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %q", kind)
	}

	now := s.now()
	claims := &Claims{
		Kind:  kind,
		Email: user.Email,
		Stamp: stamp,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer, expiry and kind. It returns ErrTokenExpired
// for an otherwise valid token past its expiry and ErrTokenInvalid for
// anything else.
func (s *TokenService) Verify(token string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.Kind != kind {
		return nil, ErrTokenInvalid
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
