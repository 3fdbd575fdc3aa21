package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// Load the secret from an environment variable. Fallback to a default (not recommended in production).
var secretKey = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "campuscare-dev-secret"
	}
	return secret
}

// AuthClaims carries the identity extracted from a verified token.
type AuthClaims struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// GenerateToken creates a signed JWT token for the given user.
// The token expires after the specified duration.
func GenerateToken(userID, email string, isAdmin bool, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     userID,
		"email":   email,
		"isAdmin": isAdmin,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// ExtractClaimsFromToken extracts the caller identity from a valid JWT token string.
func ExtractClaimsFromToken(tokenString string) (*AuthClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	email, _ := claims["email"].(string)
	isAdmin, _ := claims["isAdmin"].(bool)

	return &AuthClaims{UserID: sub, Email: email, IsAdmin: isAdmin}, nil
}
