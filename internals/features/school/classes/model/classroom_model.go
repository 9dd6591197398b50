package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GradeLevelModel: jenjang (Kelas 1..6 / VII..IX dst) per school.
type GradeLevelModel struct {
	GradeLevelID       uuid.UUID `gorm:"column:grade_level_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_level_id"`
	GradeLevelSchoolID uuid.UUID `gorm:"column:grade_level_school_id;type:uuid;not null;index:idx_grade_levels_tenant" json:"grade_level_school_id"`

	GradeLevelName     string `gorm:"column:grade_level_name;size:40;not null" json:"grade_level_name"`
	GradeLevelPosition int    `gorm:"column:grade_level_position;not null;default:1" json:"grade_level_position"`

	GradeLevelCreatedAt time.Time      `gorm:"column:grade_level_created_at;autoCreateTime" json:"grade_level_created_at"`
	GradeLevelUpdatedAt time.Time      `gorm:"column:grade_level_updated_at;autoUpdateTime" json:"grade_level_updated_at"`
	GradeLevelDeletedAt gorm.DeletedAt `gorm:"column:grade_level_deleted_at;index" json:"-"`
}

func (GradeLevelModel) TableName() string { return "grade_levels" }

// ClassroomModel: rombongan belajar, milik satu grade level.
type ClassroomModel struct {
	ClassroomID           uuid.UUID  `gorm:"column:classroom_id;type:uuid;default:gen_random_uuid();primaryKey" json:"classroom_id"`
	ClassroomSchoolID     uuid.UUID  `gorm:"column:classroom_school_id;type:uuid;not null;index:idx_classrooms_tenant" json:"classroom_school_id"`
	ClassroomGradeLevelID uuid.UUID  `gorm:"column:classroom_grade_level_id;type:uuid;not null;index" json:"classroom_grade_level_id"`
	ClassroomHomeroomTeacherID *uuid.UUID `gorm:"column:classroom_homeroom_teacher_id;type:uuid;index" json:"classroom_homeroom_teacher_id,omitempty"`

	ClassroomName     string `gorm:"column:classroom_name;size:60;not null" json:"classroom_name"`
	ClassroomCapacity int    `gorm:"column:classroom_capacity;not null;default:0" json:"classroom_capacity"`

	ClassroomCreatedAt time.Time      `gorm:"column:classroom_created_at;autoCreateTime" json:"classroom_created_at"`
	ClassroomUpdatedAt time.Time      `gorm:"column:classroom_updated_at;autoUpdateTime" json:"classroom_updated_at"`
	ClassroomDeletedAt gorm.DeletedAt `gorm:"column:classroom_deleted_at;index" json:"-"`
}

func (ClassroomModel) TableName() string { return "classrooms" }
