package auth

import (
	"time"

	"albumapi/apperr"
	"albumapi/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the fixed session window, counted from issuance.
const TokenValidity = 24 * time.Hour

const RoleUser = "user"

// Claims is the session credential payload: {id, email, role, exp}.
type Claims struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a session credential for a provisioned user.
func IssueToken(secret []byte, user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyToken validates a session credential and returns its claims. Both the
// cookie and the bearer transport feed this one function - there is no second
// trust path. Expired or tampered tokens fail regardless of whether the
// underlying user still exists.
func VerifyToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// HMAC only, to rule out algorithm confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrUnauthenticated
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrUnauthenticated
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	return claims, nil
}
