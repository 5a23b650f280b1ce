package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testUser() *models.User {
	return &models.User{
		ID:       uuid.MustParse("6f1c2b7e-4d0a-4f2e-9a51-3b8d7c2e1f00"),
		Email:    "a@x.io",
		FullName: "A",
		Role:     models.RoleStudent,
	}
}

func newTestCodec(t *testing.T, secret string, now time.Time) *Codec {
	t.Helper()
	c, err := NewCodec([]byte(secret), WithClock(fixedClock(now)))
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	return c
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "super-secret", issuedAt)
	u := testUser()

	tok, err := c.Issue(u)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if n := strings.Count(tok, "."); n != 2 {
		t.Fatalf("expected compact JWS with 3 segments, got %d dots", n)
	}

	got, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.Subject != u.ID.String() || got.Email != u.Email || got.Role != u.Role {
		t.Fatalf("claims mismatch: %+v", got)
	}
	if want := issuedAt.Add(TokenTTL); !got.ExpiresAt.Equal(want) {
		t.Fatalf("exp mismatch: got %v want %v", got.ExpiresAt, want)
	}
}

func TestIssue_Deterministic(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "k", issuedAt)
	a, err := c.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	b, err := c.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical tokens for identical inputs")
	}
}

func TestIssue_HeaderIsHS256(t *testing.T) {
	t.Parallel()

	tok, err := newTestCodec(t, "k", issuedAt).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.Split(tok, ".")[0])
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if !strings.Contains(string(raw), `"alg":"HS256"`) {
		t.Fatalf("unexpected header %s", raw)
	}
}

func TestNewCodec_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewCodec(nil); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestVerify_Expiry(t *testing.T) {
	t.Parallel()

	tok, err := newTestCodec(t, "k", issuedAt).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	justBefore := newTestCodec(t, "k", issuedAt.Add(TokenTTL-time.Second))
	if _, err := justBefore.Verify(tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	justAfter := newTestCodec(t, "k", issuedAt.Add(TokenTTL+time.Second))
	if _, err := justAfter.Verify(tok); err != common.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_Rejects(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "right-secret", issuedAt)
	good, err := c.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(good, ".")

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	validClaims := Claims{
		Email: "a@x.io",
		Role:  "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testUser().ID.String(),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"two segments", parts[0] + "." + parts[1]},
		{"tampered signature", parts[0] + "." + parts[1] + "." + flipChar(parts[2], len(parts[2])/2)},
		{"tampered payload", parts[0] + "." + reencodePayload(t, parts[1], "a@x.io", "b@x.io") + "." + parts[2]},
		{"wrong secret", newTestCodecToken(t, "other-secret")},
		{"alg none", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims)},
		{"alg HS512", sign(jwt.SigningMethodHS512, []byte("right-secret"), validClaims)},
		{"missing exp", sign(jwt.SigningMethodHS256, []byte("right-secret"), Claims{
			Role:             "student",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "x"},
		})},
		{"missing sub", sign(jwt.SigningMethodHS256, []byte("right-secret"), Claims{
			Role:             "student",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
		})},
		{"unknown role", sign(jwt.SigningMethodHS256, []byte("right-secret"), Claims{
			Role: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "x",
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := c.Verify(tt.token)
			if err != common.ErrInvalidToken {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
			if claims != nil {
				t.Fatalf("expected nil claims, got %+v", claims)
			}
		})
	}
}

func newTestCodecToken(t *testing.T, secret string) string {
	t.Helper()
	tok, err := newTestCodec(t, secret, issuedAt).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return tok
}

func flipChar(s string, i int) string {
	b := []byte(s)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func reencodePayload(t *testing.T, seg, from, to string) string {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(raw), from, to, 1)))
}
