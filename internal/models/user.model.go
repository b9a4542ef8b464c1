package models

import (
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	BaseUUIDModel
	Email        string `gorm:"type:text;not null;uniqueIndex" json:"email" validate:"required,email"`
	PasswordHash string `gorm:"type:text;not null"             json:"-"`
	Name         string `gorm:"type:text;not null"             json:"name"  validate:"required"`
	Role         Role   `gorm:"type:text;not null;default:student" json:"role"`
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// UserProfile is the public shape of a User, without the credential hash.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
