package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/models"
)

// issueToken signs an HS256 session token for a principal. The subject is
// the account's object ID hex so handlers can load the account back without
// trusting any other claim.
func issueToken(subject, kind, role, email string, permissions []string) (string, error) {
	now := time.Now()
	claims := models.Claims{
		PrincipalKind: kind,
		Role:          role,
		Permissions:   permissions,
		Email:         email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "barangay-portal-api",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.AppConfig.JWTAccessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
