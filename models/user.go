package models

import (
	"time"

	"barbershop-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleClient = "client"
	RoleMaster = "master"
	RoleAdmin  = "admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarUrl"`

	Role     string `gorm:"type:varchar(20);not null;default:'client';index" json:"role"` // 'client', 'master' or 'admin'
	IsActive bool   `gorm:"default:true" json:"isActive"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleClient
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
