package handler

import (
	"net/http"

	"productsmanager/internal/delivery/http/response"
	"productsmanager/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type loginResponse struct {
	User        *userView `json:"user"`
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresIn   int64     `json:"expiresIn"` // seconds
}

// Register handles the user registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(output.User), "User registered successfully")
}

// Login signs the user in and issues a bearer token for the product routes.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		User:        toUserView(output.User),
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(output.ExpiresIn.Seconds()),
	}, "Login successful")
}

// Logout ends the session. It needs no token so a stale client can always sign out.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.uc.Logout(c.Request().Context())

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the session identity.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := h.uc.CurrentUser(c.Request().Context())
	if !ok {
		return response.Success(c, http.StatusOK, map[string]any{"loggedIn": false}, "")
	}

	return response.Success(c, http.StatusOK, map[string]any{"loggedIn": true, "user": toUserView(user)}, "")
}
