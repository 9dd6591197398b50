package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolModel = tenant. Semua data lain membawa school_id.
type SchoolModel struct {
	SchoolID       uuid.UUID `gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_id"`
	SchoolName     string    `gorm:"column:school_name;size:120;not null" json:"school_name"`
	SchoolSlug     string    `gorm:"column:school_slug;size:120;unique;not null" json:"school_slug"`
	SchoolAddress  *string   `gorm:"column:school_address;type:text" json:"school_address,omitempty"`
	SchoolPhone    *string   `gorm:"column:school_phone;size:30" json:"school_phone,omitempty"`
	SchoolIsActive bool      `gorm:"column:school_is_active;not null;default:true" json:"school_is_active"`

	SchoolCreatedAt time.Time      `gorm:"column:school_created_at;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"column:school_updated_at;autoUpdateTime" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"-"`
}

func (SchoolModel) TableName() string { return "schools" }
