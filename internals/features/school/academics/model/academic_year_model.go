package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicYearModel: tahun ajaran per school, satu yang aktif.
type AcademicYearModel struct {
	AcademicYearID       uuid.UUID `gorm:"column:academic_year_id;type:uuid;default:gen_random_uuid();primaryKey" json:"academic_year_id"`
	AcademicYearSchoolID uuid.UUID `gorm:"column:academic_year_school_id;type:uuid;not null;index:idx_academic_years_tenant" json:"academic_year_school_id"`

	// contoh: "2025/2026"
	AcademicYearName      string    `gorm:"column:academic_year_name;size:20;not null" json:"academic_year_name"`
	AcademicYearStartDate time.Time `gorm:"column:academic_year_start_date;type:date;not null" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"column:academic_year_end_date;type:date;not null" json:"academic_year_end_date"`
	AcademicYearIsActive  bool      `gorm:"column:academic_year_is_active;not null;default:false;index" json:"academic_year_is_active"`

	AcademicYearCreatedAt time.Time      `gorm:"column:academic_year_created_at;autoCreateTime" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time      `gorm:"column:academic_year_updated_at;autoUpdateTime" json:"academic_year_updated_at"`
	AcademicYearDeletedAt gorm.DeletedAt `gorm:"column:academic_year_deleted_at;index" json:"-"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

// TermModel: periode dalam tahun ajaran (semester/triwulan).
type TermModel struct {
	TermID             uuid.UUID `gorm:"column:term_id;type:uuid;default:gen_random_uuid();primaryKey" json:"term_id"`
	TermSchoolID       uuid.UUID `gorm:"column:term_school_id;type:uuid;not null;index" json:"term_school_id"`
	TermAcademicYearID uuid.UUID `gorm:"column:term_academic_year_id;type:uuid;not null;index" json:"term_academic_year_id"`

	TermName      string    `gorm:"column:term_name;size:40;not null" json:"term_name"`
	TermPosition  int       `gorm:"column:term_position;not null;default:1" json:"term_position"`
	TermStartDate time.Time `gorm:"column:term_start_date;type:date;not null" json:"term_start_date"`
	TermEndDate   time.Time `gorm:"column:term_end_date;type:date;not null" json:"term_end_date"`

	TermCreatedAt time.Time      `gorm:"column:term_created_at;autoCreateTime" json:"term_created_at"`
	TermUpdatedAt time.Time      `gorm:"column:term_updated_at;autoUpdateTime" json:"term_updated_at"`
	TermDeletedAt gorm.DeletedAt `gorm:"column:term_deleted_at;index" json:"-"`
}

func (TermModel) TableName() string { return "terms" }
