package store

import (
	"context"

	"productsmanager/internal/domain/entity"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/domain/repository"
	"productsmanager/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	users crud[model.UserModel]
}

// NewUserRepository returns the repository as a domain.UserRepository interface.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		users: newCRUD[model.UserModel](db),
	}
}

// Create persists a new user. A taken username surfaces as ErrUsernameTaken.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.users.insert(ctx, userM); err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUsernameTaken.WrapMessage("insert user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	userM, err := repo.users.findByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(userM), nil
}

// FindByUsername matches the stored, already normalized username exactly.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	userM, err := repo.users.findOneWhere(ctx, "username = ?", username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(userM), nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
	}
}
