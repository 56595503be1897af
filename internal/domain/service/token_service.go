package service

import (
	"github.com/google/uuid"

	"chime/internal/domain/entity"
)

// Claims are the verified identity carried by an access token.
type Claims struct {
	UserID uuid.UUID
	Roles  entity.Roles
}

// TokenVerifier validates access tokens issued by the identity service.
type TokenVerifier interface {
	// VerifyAccessToken checks signature, expiry and token type and returns the claims.
	VerifyAccessToken(tokenString string) (*Claims, error)
}
