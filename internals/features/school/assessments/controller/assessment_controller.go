// internals/features/school/assessments/controller/assessment_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	assessModel "sekolahku_backend/internals/features/school/assessments/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AssessmentHandler struct {
	DB *gorm.DB
}

type AssessmentCreateRequest struct {
	AssessmentClassroomID uuid.UUID  `json:"assessment_classroom_id" validate:"required"`
	AssessmentTermID      *uuid.UUID `json:"assessment_term_id,omitempty"`
	AssessmentSubject     string     `json:"assessment_subject" validate:"required,min=2,max=60"`
	AssessmentName        string     `json:"assessment_name" validate:"required,min=2,max=100"`
	AssessmentMaxScore    float64    `json:"assessment_max_score" validate:"gt=0"`
	AssessmentWeight      float64    `json:"assessment_weight" validate:"gt=0"`
}

type GradeUpsertRequest struct {
	GradeStudentID uuid.UUID `json:"grade_student_id" validate:"required"`
	GradeScore     float64   `json:"grade_score" validate:"gte=0"`
	GradeNote      *string   `json:"grade_note,omitempty"`
}

// POST /api/a/assessments
func (h *AssessmentHandler) CreateAssessment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in AssessmentCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var room classModel.ClassroomModel
	if err := h.DB.First(&room,
		"classroom_id = ? AND classroom_school_id = ?", in.AssessmentClassroomID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "classroom tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	m := assessModel.AssessmentModel{
		AssessmentSchoolID:    schoolID,
		AssessmentClassroomID: in.AssessmentClassroomID,
		AssessmentTermID:      in.AssessmentTermID,
		AssessmentSubject:     in.AssessmentSubject,
		AssessmentName:        in.AssessmentName,
		AssessmentMaxScore:    in.AssessmentMaxScore,
		AssessmentWeight:      in.AssessmentWeight,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "assessment created", m)
}

// GET /api/a/assessments?classroom_id=&term_id=
func (h *AssessmentHandler) ListAssessments(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	q := h.DB.Where("assessment_school_id = ?", schoolID)
	if raw := c.Query("classroom_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid classroom_id")
		}
		q = q.Where("assessment_classroom_id = ?", id)
	}
	if raw := c.Query("term_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid term_id")
		}
		q = q.Where("assessment_term_id = ?", id)
	}

	var rows []assessModel.AssessmentModel
	if err := q.Order("assessment_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}

// PUT /api/a/assessments/:id/grades — upsert nilai satu student
func (h *AssessmentHandler) UpsertGrade(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in GradeUpsertRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var a assessModel.AssessmentModel
	if err := h.DB.First(&a,
		"assessment_id = ? AND assessment_school_id = ?", assessmentID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "assessment not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if in.GradeScore > a.AssessmentMaxScore {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "score melebihi max score assessment")
	}

	g := assessModel.GradeModel{
		GradeSchoolID:     schoolID,
		GradeAssessmentID: assessmentID,
		GradeStudentID:    in.GradeStudentID,
		GradeScore:        in.GradeScore,
		GradeNote:         in.GradeNote,
	}
	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "grade_assessment_id"}, {Name: "grade_student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade_score", "grade_note", "grade_updated_at"}),
	}).Create(&g).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "grade saved", g)
}

/* =======================================================
   GRADE SUMMARY PER STUDENT
======================================================= */

type subjectSummary struct {
	Subject         string  `json:"subject"`
	WeightedAverage float64 `json:"weighted_average"` // skala 0-100
	AssessmentCount int     `json:"assessment_count"`
}

// GET /api/a/students/:student_id/grade-summary?term_id=
// Rata-rata tertimbang per mapel: Σ(weight × score/max×100) / Σweight.
func (h *AssessmentHandler) GetStudentGradeSummary(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
	}

	type row struct {
		Subject  string
		Score    float64
		MaxScore float64
		Weight   float64
	}
	q := h.DB.Table("grades").
		Select("assessments.assessment_subject AS subject, grades.grade_score AS score, assessments.assessment_max_score AS max_score, assessments.assessment_weight AS weight").
		Joins("JOIN assessments ON assessments.assessment_id = grades.grade_assessment_id AND assessments.assessment_deleted_at IS NULL").
		Where("grades.grade_school_id = ? AND grades.grade_student_id = ? AND grades.grade_deleted_at IS NULL",
			schoolID, studentID)
	if raw := c.Query("term_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid term_id")
		}
		q = q.Where("assessments.assessment_term_id = ?", id)
	}

	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	type acc struct {
		weightedSum float64
		weightTotal float64
		count       int
	}
	bySubject := map[string]*acc{}
	order := []string{}
	for _, r := range rows {
		if r.MaxScore <= 0 || r.Weight <= 0 {
			continue
		}
		a, ok := bySubject[r.Subject]
		if !ok {
			a = &acc{}
			bySubject[r.Subject] = a
			order = append(order, r.Subject)
		}
		a.weightedSum += r.Weight * (r.Score / r.MaxScore * 100)
		a.weightTotal += r.Weight
		a.count++
	}

	out := make([]subjectSummary, 0, len(order))
	for _, subj := range order {
		a := bySubject[subj]
		out = append(out, subjectSummary{
			Subject:         subj,
			WeightedAverage: a.weightedSum / a.weightTotal,
			AssessmentCount: a.count,
		})
	}
	return helper.JsonOK(c, "", fiber.Map{
		"student_id": studentID,
		"subjects":   out,
	})
}
