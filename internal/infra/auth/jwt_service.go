// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"chime/config"
	"chime/internal/domain/entity"
	"chime/internal/domain/service"
)

const accessTokenType = "access"

var (
	ErrMissingSecret    = errors.New("jwt access secret must be provided")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrUnexpectedClaims = errors.New("unexpected token claims")
)

// jwtService verifies HMAC-signed access tokens. Issuance lives in the identity service.
type jwtService struct {
	accessSecret []byte
	parser       *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenVerifier, error) {
	if cfg.SecretKey.Access == "" {
		return nil, ErrMissingSecret
	}

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// VerifyAccessToken parses the token and extracts subject and roles.
func (s *jwtService) VerifyAccessToken(tokenString string) (*service.Claims, error) {
	claims := jwt.MapClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(ErrInvalidToken, errMessage(err))
	}

	if tokenType, _ := claims["type"].(string); tokenType != "" && tokenType != accessTokenType {
		return nil, errors.Wrapf(ErrUnexpectedClaims, "token type %q", tokenType)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, errors.Wrap(ErrUnexpectedClaims, err.Error())
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, errors.Wrap(ErrUnexpectedClaims, "subject is not a uuid")
	}

	rolesClaim, _ := claims["roles"].([]any)

	return &service.Claims{
		UserID: userID,
		Roles:  entity.ParseRoles(rolesClaim),
	}, nil
}

func errMessage(err error) string {
	if err == nil {
		return "token not valid"
	}

	return err.Error()
}
