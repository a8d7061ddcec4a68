// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "productsmanager/internal/delivery/context"
	"productsmanager/internal/domain/entity"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/domain/repository"
	"productsmanager/internal/domain/service"
	"productsmanager/internal/session"
	"productsmanager/internal/usecase"
	"productsmanager/internal/validation"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPassword is hashed at construction so logins for unknown usernames
// pay for a bcrypt comparison too.
const dummyPassword = "productsmanager-timing-equalizer"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	session      *session.Session
	validator    *validation.Validator
	logger       *slog.Logger

	// dummyHash is compared against for unknown usernames.
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Session      *session.Session
	Validator    *validation.Validator
	Logger       *slog.Logger
}

type registration struct {
	Username        string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	srv := &authService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		session:      params.Session,
		validator:    params.Validator,
		logger:       params.Logger,
	}

	hash, err := params.Hasher.Hash(dummyPassword)
	if err != nil {
		params.Logger.Warn("Failed to prepare timing hash", slog.Any("error", err))
	}
	srv.dummyHash = hash

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// NormalizeUsername trims and lowercases a username for storage and lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register creates a new account without signing in.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	form := registration{
		Username:        NormalizeUsername(input.Username),
		Password:        strings.TrimSpace(input.Password),
		ConfirmPassword: strings.TrimSpace(input.ConfirmPassword),
	}
	if err := srv.validator.Validate(form); err != nil {
		srv.log(ctx).Debug("Registration rejected", slog.String("username", form.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "register")
	}

	user, err := repository.RunInUnit(ctx, srv.txManager, func(repoFactory repository.RepositoryFactory) (*entity.User, error) {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByUsername(ctx, form.Username)
		if err == nil {
			return nil, domainerrors.ErrUsernameTaken
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to look up username")
		}

		hash, err := srv.hasher.Hash(form.Password)
		if err != nil {
			return nil, err
		}

		newUser := &entity.User{Username: form.Username, PasswordHash: hash}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return nil, err
		}

		return newUser, nil
	})
	if err != nil {
		level := slog.LevelWarn
		if domainerrors.KindOf(err) == domainerrors.KindHashing {
			level = slog.LevelError
		}
		srv.log(ctx).Log(ctx, level, "Registration failed", slog.String("username", form.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "register")
	}

	srv.log(ctx).Info("User registered", slog.Any("user", user))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies credentials and starts the session.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	creds := credentials{
		Username: NormalizeUsername(input.Username),
		Password: strings.TrimSpace(input.Password),
	}
	if err := srv.validator.Validate(creds); err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	user, err := repository.RunInUnit(ctx, srv.txManager, func(repoFactory repository.RepositoryFactory) (*entity.User, error) {
		return repoFactory.UserRepo().FindByUsername(ctx, creds.Username)
	})
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Error("Login lookup failed", slog.String("username", creds.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "login failed")
	}

	// Check password outside the unit (bcrypt is CPU-bound).
	if user == nil {
		srv.hasher.Check(creds.Password, srv.dummyHash)
		srv.log(ctx).Warn("Login failed", slog.String("username", creds.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}
	if !srv.hasher.Check(creds.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", creds.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("user", user), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	srv.session.Set(user)
	srv.log(ctx).Info("User logged in", slog.Any("user", user))

	return &usecase.LoginOutput{
		User:        user,
		AccessToken: token,
		ExpiresIn:   srv.tokenService.TokenDuration(),
	}, nil
}

// Logout ends the session.
func (srv *authService) Logout(ctx context.Context) {
	if user, ok := srv.session.Current(); ok {
		srv.log(ctx).Info("User logged out", slog.Any("user", user))
	}
	srv.session.Clear()
}

// CurrentUser returns the session identity.
func (srv *authService) CurrentUser(_ context.Context) (*entity.User, bool) {
	return srv.session.Current()
}

// Authenticate ties a bearer token to the live session.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "invalid token")
	}

	user, ok := srv.session.Current()
	if !ok || user.ID != claims.UserID {
		return nil, errors.Wrap(domainerrors.ErrNotLoggedIn, "token does not match session")
	}

	return user, nil
}
