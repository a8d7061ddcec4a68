package auth

import (
	"time"

	"productsmanager/config"
	"productsmanager/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const tokenIssuer = "productsmanager"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := time.Duration(0)
	if cfg.Auth != nil {
		ttl = cfg.Auth.TokenTTL
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
	}, nil
}

// GenerateToken signs an HS256 token whose subject is the user ID.
func (s *jwtService) GenerateToken(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// ValidateToken checks the validity of a token string and returns its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// TokenDuration returns the configured token lifetime.
func (s *jwtService) TokenDuration() time.Duration {
	return s.ttl
}
