package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Manager struct {
	Secret    []byte
	AccessTTL time.Duration
	Issuer    string
}

type Claims struct {
	GivenName       string     `json:"given_name,omitempty"`
	FamilyName      string     `json:"family_name,omitempty"`
	Email           string     `json:"email,omitempty"`
	PermissionLevel Permission `json:"x_permission_level"`
	jwt.RegisteredClaims
}

func (c *Claims) User() User {
	return User{
		Username:        c.Subject,
		FirstName:       c.GivenName,
		LastName:        c.FamilyName,
		Email:           c.Email,
		PermissionLevel: c.PermissionLevel,
	}
}

// NewAccessToken signs a token for u that expires after AccessTTL.
func (m *Manager) NewAccessToken(u User) (string, error) {
	now := time.Now()
	claims := Claims{
		GivenName:       u.FirstName,
		FamilyName:      u.LastName,
		Email:           u.Email,
		PermissionLevel: u.PermissionLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.AccessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

// Parse verifies signature and expiry. Any HMAC variant is accepted since
// tokens come from an identity service sharing the secret.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
