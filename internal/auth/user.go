package auth

import (
	"github.com/google/uuid"

	wfmodel "github.com/escrowline/backend/internal/workflow/model"
)

// User is a case handler who can sign in. Credentials never leave the server.
type User struct {
	wfmodel.BaseModel
	Email        string `gorm:"type:varchar(255);column:email;not null;uniqueIndex" json:"email"`
	FirstName    string `gorm:"type:varchar(100);column:first_name;not null" json:"firstName"`
	LastName     string `gorm:"type:varchar(100);column:last_name;not null" json:"lastName"`
	PasswordHash string `gorm:"type:varchar(64);column:password_hash;not null" json:"-"`
	Salt         string `gorm:"type:varchar(32);column:salt;not null" json:"-"`
}

func (u *User) TableName() string {
	return "users"
}

type RegisterDTO struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateUserDTO changes the signed-in user. Fields left nil are not changed.
type UpdateUserDTO struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Password  *string `json:"password,omitempty"`
}

type PasswordResetRequestDTO struct {
	Email string `json:"email" binding:"required"`
}

type PasswordResetDTO struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// TokenPair is the response of login. Refresh answers without a refresh token.
type TokenPair struct {
	UserID       uuid.UUID `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresIn    int64     `json:"expiresIn"` // Access token lifetime in seconds
}
