package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentModel: penilaian per classroom/mapel/term (UH, UTS, UAS, tugas).
type AssessmentModel struct {
	AssessmentID          uuid.UUID  `gorm:"column:assessment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"assessment_id"`
	AssessmentSchoolID    uuid.UUID  `gorm:"column:assessment_school_id;type:uuid;not null;index:idx_assessments_tenant" json:"assessment_school_id"`
	AssessmentClassroomID uuid.UUID  `gorm:"column:assessment_classroom_id;type:uuid;not null;index" json:"assessment_classroom_id"`
	AssessmentTermID      *uuid.UUID `gorm:"column:assessment_term_id;type:uuid;index" json:"assessment_term_id,omitempty"`

	AssessmentSubject  string  `gorm:"column:assessment_subject;size:60;not null" json:"assessment_subject"`
	AssessmentName     string  `gorm:"column:assessment_name;size:100;not null" json:"assessment_name"`
	AssessmentMaxScore float64 `gorm:"column:assessment_max_score;not null;default:100" json:"assessment_max_score"`
	AssessmentWeight   float64 `gorm:"column:assessment_weight;not null;default:1" json:"assessment_weight"`

	AssessmentCreatedAt time.Time      `gorm:"column:assessment_created_at;autoCreateTime" json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time      `gorm:"column:assessment_updated_at;autoUpdateTime" json:"assessment_updated_at"`
	AssessmentDeletedAt gorm.DeletedAt `gorm:"column:assessment_deleted_at;index" json:"-"`
}

func (AssessmentModel) TableName() string { return "assessments" }

// GradeModel: nilai satu student untuk satu assessment.
type GradeModel struct {
	GradeID           uuid.UUID `gorm:"column:grade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_id"`
	GradeSchoolID     uuid.UUID `gorm:"column:grade_school_id;type:uuid;not null;index" json:"grade_school_id"`
	GradeAssessmentID uuid.UUID `gorm:"column:grade_assessment_id;type:uuid;not null;index:uniq_grade_entry,unique,priority:1" json:"grade_assessment_id"`
	GradeStudentID    uuid.UUID `gorm:"column:grade_student_id;type:uuid;not null;index:uniq_grade_entry,unique,priority:2" json:"grade_student_id"`

	GradeScore float64 `gorm:"column:grade_score;not null;check:grade_score>=0" json:"grade_score"`
	GradeNote  *string `gorm:"column:grade_note;type:text" json:"grade_note,omitempty"`

	GradeCreatedAt time.Time      `gorm:"column:grade_created_at;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt time.Time      `gorm:"column:grade_updated_at;autoUpdateTime" json:"grade_updated_at"`
	GradeDeletedAt gorm.DeletedAt `gorm:"column:grade_deleted_at;index" json:"-"`
}

func (GradeModel) TableName() string { return "grades" }
