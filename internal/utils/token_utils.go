package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated principal: the user ID as the subject,
// whether the user is staff, and the journalist record they act as (if any).
type Claims struct {
	IsStaff      bool    `json:"staff"`
	JournalistID *string `json:"journalistID,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a signed token for the given principal.
func GenerateJWT(userID string, isStaff bool, journalistID *string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := Claims{
		IsStaff:      isStaff,
		JournalistID: journalistID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and
// standard claims. It returns the claims if the token is valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
