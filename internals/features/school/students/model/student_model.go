package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// STUDENT PROFILE
// =========================================================

type StudentProfileModel struct {
	StudentID       uuid.UUID  `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`
	StudentSchoolID uuid.UUID  `gorm:"column:student_school_id;type:uuid;not null;index:idx_students_tenant" json:"student_school_id"`
	StudentUserID   *uuid.UUID `gorm:"column:student_user_id;type:uuid;index" json:"student_user_id,omitempty"`

	StudentName      string     `gorm:"column:student_name;size:100;not null" json:"student_name"`
	StudentNIS       *string    `gorm:"column:student_nis;size:30;index" json:"student_nis,omitempty"`
	StudentGender    *string    `gorm:"column:student_gender;size:1" json:"student_gender,omitempty"` // L / P
	StudentBirthDate *time.Time `gorm:"column:student_birth_date;type:date" json:"student_birth_date,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (StudentProfileModel) TableName() string { return "student_profiles" }

// =========================================================
// GUARDIAN (orang tua/wali) + relasi ke student
// =========================================================

type GuardianModel struct {
	GuardianID       uuid.UUID  `gorm:"column:guardian_id;type:uuid;default:gen_random_uuid();primaryKey" json:"guardian_id"`
	GuardianSchoolID uuid.UUID  `gorm:"column:guardian_school_id;type:uuid;not null;index:idx_guardians_tenant" json:"guardian_school_id"`
	GuardianUserID   *uuid.UUID `gorm:"column:guardian_user_id;type:uuid;index" json:"guardian_user_id,omitempty"`

	GuardianName  string  `gorm:"column:guardian_name;size:100;not null" json:"guardian_name"`
	GuardianPhone *string `gorm:"column:guardian_phone;size:30" json:"guardian_phone,omitempty"`
	GuardianEmail *string `gorm:"column:guardian_email;size:255" json:"guardian_email,omitempty"`

	GuardianCreatedAt time.Time      `gorm:"column:guardian_created_at;autoCreateTime" json:"guardian_created_at"`
	GuardianUpdatedAt time.Time      `gorm:"column:guardian_updated_at;autoUpdateTime" json:"guardian_updated_at"`
	GuardianDeletedAt gorm.DeletedAt `gorm:"column:guardian_deleted_at;index" json:"-"`
}

func (GuardianModel) TableName() string { return "guardians" }

type StudentGuardianModel struct {
	StudentGuardianID         uuid.UUID `gorm:"column:student_guardian_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_guardian_id"`
	StudentGuardianStudentID  uuid.UUID `gorm:"column:student_guardian_student_id;type:uuid;not null;index:uniq_student_guardian,unique,priority:1" json:"student_guardian_student_id"`
	StudentGuardianGuardianID uuid.UUID `gorm:"column:student_guardian_guardian_id;type:uuid;not null;index:uniq_student_guardian,unique,priority:2" json:"student_guardian_guardian_id"`

	// ayah | ibu | wali
	StudentGuardianRelation string `gorm:"column:student_guardian_relation;size:20;not null;default:'wali'" json:"student_guardian_relation"`

	StudentGuardianCreatedAt time.Time      `gorm:"column:student_guardian_created_at;autoCreateTime" json:"student_guardian_created_at"`
	StudentGuardianDeletedAt gorm.DeletedAt `gorm:"column:student_guardian_deleted_at;index" json:"-"`
}

func (StudentGuardianModel) TableName() string { return "student_guardians" }

// =========================================================
// ENROLLMENT (student ↔ classroom ↔ academic year)
// =========================================================

type EnrollmentStatus string

const (
	EnrollmentStatusActive      EnrollmentStatus = "active"
	EnrollmentStatusInactive    EnrollmentStatus = "inactive"
	EnrollmentStatusTransferred EnrollmentStatus = "transferred"
	EnrollmentStatusGraduated   EnrollmentStatus = "graduated"
)

type EnrollmentModel struct {
	EnrollmentID             uuid.UUID `gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"enrollment_id"`
	EnrollmentSchoolID       uuid.UUID `gorm:"column:enrollment_school_id;type:uuid;not null;index:idx_enrollments_tenant" json:"enrollment_school_id"`
	EnrollmentStudentID      uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;index:uniq_enrollment_year,unique,priority:1" json:"enrollment_student_id"`
	EnrollmentClassroomID    uuid.UUID `gorm:"column:enrollment_classroom_id;type:uuid;not null;index" json:"enrollment_classroom_id"`
	EnrollmentAcademicYearID uuid.UUID `gorm:"column:enrollment_academic_year_id;type:uuid;not null;index:uniq_enrollment_year,unique,priority:2" json:"enrollment_academic_year_id"`

	EnrollmentStatus     EnrollmentStatus `gorm:"column:enrollment_status;type:varchar(20);not null;default:'active';index" json:"enrollment_status"`
	EnrollmentEnrolledAt time.Time        `gorm:"column:enrollment_enrolled_at;not null;default:now()" json:"enrollment_enrolled_at"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"-"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
