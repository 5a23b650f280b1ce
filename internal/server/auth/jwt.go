// Package auth owns the two cryptographic pieces of the service: password
// hashing and the signed session tokens handed to clients.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an issued token. Tokens cannot be
// revoked, so this is also the window during which a deleted or demoted
// account keeps working.
const TokenTTL = 24 * time.Hour

var ErrEmptySecret = errors.New("token signing secret is empty")

// signingMethod is pinned; the alg header of incoming tokens is never trusted.
var signingMethod = jwt.SigningMethodHS256

// Claims is the token payload: {sub, email, role, exp}.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SessionClaims is what a verified token tells the rest of the server.
type SessionClaims struct {
	Subject   string
	Email     string
	Role      models.Role
	ExpiresAt time.Time
}

// Codec issues and verifies HS256 session tokens with a secret supplied at
// construction. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

type CodecOption func(*Codec)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secret []byte, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	c := &Codec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// Issue signs a token for u that expires TokenTTL from now.
func (c *Codec) Issue(u *models.User) (string, error) {
	claims := Claims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(c.now().Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrTokenIssuance, err)
	}
	return signed, nil
}

// Verify checks structure, algorithm, signature and expiry. Every failure
// is reported as common.ErrInvalidToken and nothing else.
func (c *Codec) Verify(tokenString string) (*SessionClaims, error) {
	claims := &Claims{}

	token, err := c.parser.ParseWithClaims(tokenString, claims, c.keyFunc)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil || !models.Role(claims.Role).Valid() {
		return nil, common.ErrInvalidToken
	}

	return &SessionClaims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Role:      models.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != signingMethod.Alg() {
		return nil, common.ErrInvalidToken
	}
	return c.secret, nil
}
