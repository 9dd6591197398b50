package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID       uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string         `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    string         `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password string         `gorm:"not null" json:"-" validate:"required,min=8"`
	Roles    pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"roles"`
	IsActive bool           `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// HasRole cek apakah user punya role tertentu
func (u *UserModel) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
