package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oliverbeck/peakstatus/internal/models"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the identity payload embedded in issued tokens.
type Claims struct {
	UserID   uint        `json:"uid"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 tokens with a fixed lifetime.
type Codec struct {
	secret []byte
	expiry time.Duration
}

func NewCodec(secret string, expiry time.Duration) *Codec {
	return &Codec{secret: []byte(secret), expiry: expiry}
}

// Issue produces a signed token for the given identity. The password never
// enters the claim set.
func (c *Codec) Issue(userID uint, username string, role models.Role) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify validates the signature and expiry. Expired tokens fail with
// ErrTokenExpired; anything else (bad signature, malformed, wrong alg)
// fails with ErrTokenInvalid.
func (c *Codec) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Decode extracts claims without checking the signature. Returns nil for
// structurally malformed input. Only for inspection, such as logging which
// account presented a rejected token, never for authorization.
func (c *Codec) Decode(raw string) *Claims {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil
	}
	return &claims
}
