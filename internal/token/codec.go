package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the token was valid once but is past its window.
	ErrExpired = errors.New("verification token expired")
	// ErrInvalid means the token never was valid (bad signature or shape).
	ErrInvalid = errors.New("verification token invalid")
)

// Codec signs and verifies email-verification tokens. Tokens are
// stateless; redeeming one does not consume it.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

type emailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewCodec creates a codec with the given signing secret and validity
// window.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the validity window.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token carrying the email.
func (c *Codec) Issue(email string) (string, error) {
	now := time.Now()
	claims := emailClaims{
		Email: strings.ToLower(strings.TrimSpace(email)),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks the token and returns the email it carries. Expired and
// otherwise-invalid tokens yield distinct errors.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &emailClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if !parsed.Valid || claims.Email == "" {
		return "", ErrInvalid
	}
	return claims.Email, nil
}
