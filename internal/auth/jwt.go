package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID   uuid.UUID
	Email    string
	Username string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Purpose  string `json:"purpose,omitempty"`
}

const purposePasswordReset = "password_reset"

func GenerateToken(userID uuid.UUID, email, username, secret string, expiry time.Duration) (string, error) {
	return signToken(userID, email, username, "", secret, expiry)
}

// GeneratePasswordResetToken issues a short-lived token only accepted by
// ValidatePasswordResetToken.
func GeneratePasswordResetToken(userID uuid.UUID, email, secret string, expiry time.Duration) (string, error) {
	return signToken(userID, email, "", purposePasswordReset, secret, expiry)
}

func signToken(userID uuid.UUID, email, username, purpose, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID.String(),
		Email:    email,
		Username: username,
		Purpose:  purpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signToken: %w", err)
	}
	return signed, nil
}

func ValidateToken(tokenString, secret string) (*Claims, error) {
	tc, err := parseToken(tokenString, secret)
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: %w", err)
	}
	if tc.Purpose != "" {
		return nil, fmt.Errorf("ValidateToken: token not valid for authentication")
	}
	return claimsFrom(tc)
}

func ValidatePasswordResetToken(tokenString, secret string) (*Claims, error) {
	tc, err := parseToken(tokenString, secret)
	if err != nil {
		return nil, fmt.Errorf("ValidatePasswordResetToken: %w", err)
	}
	if tc.Purpose != purposePasswordReset {
		return nil, fmt.Errorf("ValidatePasswordResetToken: wrong token purpose")
	}
	return claimsFrom(tc)
}

func parseToken(tokenString, secret string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return tc, nil
}

func claimsFrom(tc *tokenClaims) (*Claims, error) {
	userID, err := uuid.Parse(tc.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id in token: %w", err)
	}
	return &Claims{
		UserID:   userID,
		Email:    tc.Email,
		Username: tc.Username,
	}, nil
}
