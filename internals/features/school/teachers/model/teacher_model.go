package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherProfileModel struct {
	TeacherID       uuid.UUID  `gorm:"column:teacher_id;type:uuid;default:gen_random_uuid();primaryKey" json:"teacher_id"`
	TeacherSchoolID uuid.UUID  `gorm:"column:teacher_school_id;type:uuid;not null;index:idx_teachers_tenant" json:"teacher_school_id"`
	TeacherUserID   *uuid.UUID `gorm:"column:teacher_user_id;type:uuid;index" json:"teacher_user_id,omitempty"`

	TeacherName    string  `gorm:"column:teacher_name;size:100;not null" json:"teacher_name"`
	TeacherNIP     *string `gorm:"column:teacher_nip;size:30;index" json:"teacher_nip,omitempty"`
	TeacherSubject *string `gorm:"column:teacher_subject;size:60" json:"teacher_subject,omitempty"`
	TeacherPhone   *string `gorm:"column:teacher_phone;size:30" json:"teacher_phone,omitempty"`

	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;autoUpdateTime" json:"teacher_updated_at"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;index" json:"-"`
}

func (TeacherProfileModel) TableName() string { return "teacher_profiles" }
