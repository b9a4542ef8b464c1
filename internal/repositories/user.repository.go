package repositories

import (
	"context"
	"errors"

	. "mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error)
	GetByRole(ctx context.Context, tx *gorm.DB, role Role) ([]User, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]User, error)
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	log := logger.New("userRepository").Function("GetByID")

	var user User
	if err := tx.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user", err, "userID", id)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error) {
	log := logger.New("userRepository").Function("GetByEmail")

	var user User
	if err := tx.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user by email", err)
	}

	return &user, nil
}

func (r *userRepository) GetByRole(ctx context.Context, tx *gorm.DB, role Role) ([]User, error) {
	log := logger.New("userRepository").Function("GetByRole")

	var users []User
	if err := tx.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, log.Err("failed to get users by role", err, "role", role)
	}

	return users, nil
}

func (r *userRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]User, error) {
	log := logger.New("userRepository").Function("GetAll")

	var users []User
	if err := tx.WithContext(ctx).Order("name ASC").Find(&users).Error; err != nil {
		return nil, log.Err("failed to get users", err)
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := logger.New("userRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return log.Err("failed to create user", err, "email", user.Email)
	}

	log.Info("User created", "userID", user.ID, "role", user.Role)
	return nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := logger.New("userRepository").Function("Update")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := logger.New("userRepository").Function("Delete")

	result := tx.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete user", result.Error, "userID", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
