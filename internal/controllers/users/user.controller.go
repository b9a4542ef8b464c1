package userController

import (
	"context"
	"errors"
	"fmt"

	"mantis/internal/apperrors"
	"mantis/internal/database"
	. "mantis/internal/models"
	"mantis/internal/repositories"
	"mantis/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required"`
	Role     Role   `json:"role"     validate:"required"`
}

type UpdateUserRequest struct {
	Name     string  `json:"name"               validate:"required"`
	Role     Role    `json:"role"               validate:"required"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type UserControllerInterface interface {
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, request *CreateUserRequest) (*User, error)
	Update(ctx context.Context, id uuid.UUID, request *UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserController struct {
	userRepo repositories.UserRepository
	db       database.DB
	validate *validator.Validate
}

func New(repos repositories.Repository, db database.DB) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		db:       db,
		validate: validation.New(),
	}
}

func (c *UserController) List(ctx context.Context) ([]User, error) {
	users, err := c.userRepo.GetAll(ctx, c.db.SQL)
	if err != nil {
		return nil, apperrors.Persistence("failed to list users", err)
	}
	return users, nil
}

func (c *UserController) ListByRole(ctx context.Context, role Role) ([]User, error) {
	if !role.Valid() {
		return nil, apperrors.Validation("role must be student, instructor or admin")
	}

	users, err := c.userRepo.GetByRole(ctx, c.db.SQL, role)
	if err != nil {
		return nil, apperrors.Persistence("failed to list users by role", err)
	}
	return users, nil
}

func (c *UserController) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	if id == uuid.Nil {
		return nil, apperrors.Validation("userId is required")
	}

	user, err := c.userRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Persistence("failed to fetch user", err)
	}
	return user, nil
}

func (c *UserController) GetByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}

	user, err := c.userRepo.GetByEmail(ctx, c.db.SQL, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Persistence("failed to fetch user", err)
	}
	return user, nil
}

func (c *UserController) Create(
	ctx context.Context,
	request *CreateUserRequest,
) (*User, error) {
	if err := c.validate.Struct(request); err != nil {
		if fields := validation.Fields(err); len(fields) > 0 {
			return nil, apperrors.MissingFields(fields)
		}
		return nil, apperrors.Validation(err.Error())
	}
	if !request.Role.Valid() {
		return nil, apperrors.Validation("role must be student, instructor or admin")
	}

	user := &User{
		Email: request.Email,
		Name:  request.Name,
		Role:  request.Role,
	}
	if err := user.SetPassword(request.Password); err != nil {
		return nil, apperrors.Persistence("failed to hash password", err)
	}

	if err := c.userRepo.Create(ctx, c.db.SQL, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation(fmt.Sprintf("email %q is already registered", request.Email))
		}
		return nil, apperrors.Persistence("failed to create user", err)
	}

	return user, nil
}

func (c *UserController) Update(
	ctx context.Context,
	id uuid.UUID,
	request *UpdateUserRequest,
) (*User, error) {
	if err := c.validate.Struct(request); err != nil {
		if fields := validation.Fields(err); len(fields) > 0 {
			return nil, apperrors.MissingFields(fields)
		}
		return nil, apperrors.Validation(err.Error())
	}
	if !request.Role.Valid() {
		return nil, apperrors.Validation("role must be student, instructor or admin")
	}

	user, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = request.Name
	user.Role = request.Role
	if request.Password != nil {
		if err := user.SetPassword(*request.Password); err != nil {
			return nil, apperrors.Persistence("failed to hash password", err)
		}
	}

	if err := c.userRepo.Update(ctx, c.db.SQL, user); err != nil {
		return nil, apperrors.Persistence("failed to update user", err)
	}

	return user, nil
}

func (c *UserController) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperrors.Validation("userId is required")
	}

	if err := c.userRepo.Delete(ctx, c.db.SQL, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return apperrors.Persistence("failed to delete user", err)
	}
	return nil
}
