package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healthtracker/config"
	"healthtracker/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Email             string `json:"email"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
}

// TokenService verifies HS256 bearer tokens signed with the shared secret.
type TokenService struct {
	secret []byte
	issuer string
	log    logger.Logger
}

func NewTokenService(config config.Config) *TokenService {
	return &TokenService{
		secret: []byte(config.JWTSecret),
		issuer: config.JWTIssuer,
		log:    logger.New("TokenService"),
	}
}

func (s *TokenService) Enabled() bool {
	return len(s.secret) > 0
}

func (s *TokenService) ValidateToken(ctx context.Context, token string) (*types.TokenInfo, error) {
	log := s.log.TraceFromContext(ctx).Function("ValidateToken")

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	if !s.Enabled() {
		return nil, log.ErrorWithType(ErrInvalidToken, "token verification is not configured")
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	name := claims.Name
	if name == "" {
		name = claims.PreferredUsername
	}

	info := &types.TokenInfo{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    name,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, nil
}
