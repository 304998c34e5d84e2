package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken mints an HS256 bearer token carrying the user's id.
// Login and signup live outside this service; the mint exists for ops
// tooling and tests.
func GenerateAccessToken(userID, secret, issuer string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return signedToken, nil
}
