package middleware

import (
	"strings"

	"productsmanager/internal/domain/entity"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	bearerPrefix = "Bearer "

	// ContextKeyUser holds the authenticated *entity.User on echo.Context.
	ContextKeyUser = "user"
)

// AuthMiddleware admits requests whose bearer token belongs to the session identity.
type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate validates the JWT access token against the live session.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return errors.Wrap(domainerrors.ErrNotLoggedIn, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if tokenString == authHeader {
			return errors.Wrap(domainerrors.ErrInvalidCredentials.WithDetails("must be a Bearer token"), "bad authorization header")
		}

		user, err := m.auth.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

// CurrentUser returns the user set by Authenticate.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*entity.User)

	return user, ok
}
