package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:100;not null"`
	Name      string    `json:"name" gorm:"size:1000;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// MaxPasswordBytes is bcrypt's input limit. The validator's max counts
// runes, so multi-byte passwords are checked against this separately.
const MaxPasswordBytes = 72

type RegisterRequest struct {
	Email    string `form:"email" binding:"required,email,max=100"`
	Password string `form:"password" binding:"required,max=72"`
	Name     string `form:"name" binding:"required,max=1000"`
}

type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// TrimSpace leaves the password as typed.
func (r *RegisterRequest) TrimSpace() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r *LoginRequest) TrimSpace() {
	r.Email = strings.TrimSpace(r.Email)
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
