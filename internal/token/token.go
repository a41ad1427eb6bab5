// Package token issues and verifies the signed access and refresh tokens
// embedded in user sessions.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/izthiaka/loumaa/internal/config"
	"github.com/izthiaka/loumaa/internal/model"
)

// ErrInvalidToken is returned for any token that fails signature, expiry or
// claim checks. Callers get no further detail.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the user's external matricule and internal id.
type Claims struct {
	Matricule string `json:"matricule"`
	UserID    string `json:"uid"`
	jwt.RegisteredClaims
}

// Issuer creates and verifies HS256 tokens with a single process-wide secret.
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer builds an Issuer from the token configuration.
func NewIssuer(cfg config.TokenConfig) *Issuer {
	return &Issuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// AccessToken signs a short-lived access token for the user.
func (i *Issuer) AccessToken(user *model.User) (string, error) {
	return i.sign(user, i.accessTTL)
}

// RefreshToken signs a refresh token for the user.
func (i *Issuer) RefreshToken(user *model.User) (string, error) {
	return i.sign(user, i.refreshTTL)
}

func (i *Issuer) sign(user *model.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Matricule: user.Matricule,
		UserID:    user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.Hex(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses the token, checks its signature and expiry, and returns the
// embedded claims. Every failure collapses into ErrInvalidToken.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(i.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
