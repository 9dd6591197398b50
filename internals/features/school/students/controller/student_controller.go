// internals/features/school/students/controller/student_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicModel "sekolahku_backend/internals/features/school/academics/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type StudentHandler struct {
	DB *gorm.DB
}

/* =======================================================
   STUDENT PROFILES
======================================================= */

type StudentCreateRequest struct {
	StudentName      string     `json:"student_name" validate:"required,min=2,max=100"`
	StudentNIS       *string    `json:"student_nis,omitempty" validate:"omitempty,max=30"`
	StudentGender    *string    `json:"student_gender,omitempty" validate:"omitempty,oneof=L P"`
	StudentBirthDate *time.Time `json:"student_birth_date,omitempty"`
	StudentUserID    *uuid.UUID `json:"student_user_id,omitempty"`
}

// POST /api/a/students
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in StudentCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m := studentModel.StudentProfileModel{
		StudentSchoolID:  schoolID,
		StudentUserID:    in.StudentUserID,
		StudentName:      strings.TrimSpace(in.StudentName),
		StudentNIS:       in.StudentNIS,
		StudentGender:    in.StudentGender,
		StudentBirthDate: in.StudentBirthDate,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "student created", m)
}

// GET /api/a/students?q=&nis=
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&studentModel.StudentProfileModel{}).
		Where("student_school_id = ?", schoolID)
	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		q = q.Where("student_name ILIKE ?", "%"+kw+"%")
	}
	if nis := strings.TrimSpace(c.Query("nis")); nis != "" {
		q = q.Where("student_nis = ?", nis)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []studentModel.StudentProfileModel
	if err := q.
		Order("student_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =======================================================
   GUARDIANS
======================================================= */

type GuardianCreateRequest struct {
	GuardianName   string     `json:"guardian_name" validate:"required,min=2,max=100"`
	GuardianPhone  *string    `json:"guardian_phone,omitempty" validate:"omitempty,max=30"`
	GuardianEmail  *string    `json:"guardian_email,omitempty" validate:"omitempty,email"`
	GuardianUserID *uuid.UUID `json:"guardian_user_id,omitempty"`
}

type GuardianLinkRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Relation  string    `json:"relation" validate:"omitempty,max=20"`
}

// POST /api/a/guardians
func (h *StudentHandler) CreateGuardian(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in GuardianCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m := studentModel.GuardianModel{
		GuardianSchoolID: schoolID,
		GuardianUserID:   in.GuardianUserID,
		GuardianName:     strings.TrimSpace(in.GuardianName),
		GuardianPhone:    in.GuardianPhone,
		GuardianEmail:    in.GuardianEmail,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "guardian created", m)
}

// POST /api/a/guardians/:id/link — tautkan guardian ke student
func (h *StudentHandler) LinkGuardian(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	guardianID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in GuardianLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	// dua-duanya harus ada di school yang sama
	var g studentModel.GuardianModel
	if err := h.DB.First(&g,
		"guardian_id = ? AND guardian_school_id = ?", guardianID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "guardian not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	var st studentModel.StudentProfileModel
	if err := h.DB.First(&st,
		"student_id = ? AND student_school_id = ?", in.StudentID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "student tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	link := studentModel.StudentGuardianModel{
		StudentGuardianStudentID:  in.StudentID,
		StudentGuardianGuardianID: guardianID,
	}
	if in.Relation != "" {
		link.StudentGuardianRelation = in.Relation
	}
	if err := h.DB.Create(&link).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return helper.JsonError(c, http.StatusConflict, "guardian sudah tertaut ke student ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "guardian linked", link)
}

/* =======================================================
   ENROLLMENTS
======================================================= */

type EnrollmentCreateRequest struct {
	EnrollmentStudentID      uuid.UUID `json:"enrollment_student_id" validate:"required"`
	EnrollmentClassroomID    uuid.UUID `json:"enrollment_classroom_id" validate:"required"`
	EnrollmentAcademicYearID uuid.UUID `json:"enrollment_academic_year_id" validate:"required"`
}

type EnrollmentStatusRequest struct {
	EnrollmentStatus studentModel.EnrollmentStatus `json:"enrollment_status" validate:"required,oneof=active inactive transferred graduated"`
}

// POST /api/a/enrollments
func (h *StudentHandler) CreateEnrollment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in EnrollmentCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var st studentModel.StudentProfileModel
	if err := h.DB.First(&st,
		"student_id = ? AND student_school_id = ?", in.EnrollmentStudentID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "student tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	var room classModel.ClassroomModel
	if err := h.DB.First(&room,
		"classroom_id = ? AND classroom_school_id = ?", in.EnrollmentClassroomID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "classroom tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	var year academicModel.AcademicYearModel
	if err := h.DB.First(&year,
		"academic_year_id = ? AND academic_year_school_id = ?", in.EnrollmentAcademicYearID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "academic year tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	m := studentModel.EnrollmentModel{
		EnrollmentSchoolID:       schoolID,
		EnrollmentStudentID:      in.EnrollmentStudentID,
		EnrollmentClassroomID:    in.EnrollmentClassroomID,
		EnrollmentAcademicYearID: in.EnrollmentAcademicYearID,
		EnrollmentStatus:         studentModel.EnrollmentStatusActive,
		EnrollmentEnrolledAt:     time.Now(),
	}
	if err := h.DB.Create(&m).Error; err != nil {
		// unik per student per tahun ajaran
		if strings.Contains(err.Error(), "duplicate") {
			return helper.JsonError(c, http.StatusConflict, "student sudah terdaftar di tahun ajaran ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "enrollment created", m)
}

// GET /api/a/enrollments?classroom_id=&academic_year_id=&status=
func (h *StudentHandler) ListEnrollments(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 500)

	q := h.DB.Model(&studentModel.EnrollmentModel{}).
		Where("enrollment_school_id = ?", schoolID)
	if raw := c.Query("classroom_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid classroom_id")
		}
		q = q.Where("enrollment_classroom_id = ?", id)
	}
	if raw := c.Query("academic_year_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("enrollment_academic_year_id = ?", id)
	}
	if st := c.Query("status"); st != "" {
		q = q.Where("enrollment_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []studentModel.EnrollmentModel
	if err := q.
		Order("enrollment_enrolled_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /api/a/enrollments/:id/status
func (h *StudentHandler) UpdateEnrollmentStatus(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in EnrollmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	res := h.DB.Model(&studentModel.EnrollmentModel{}).
		Where("enrollment_id = ? AND enrollment_school_id = ?", id, schoolID).
		Update("enrollment_status", in.EnrollmentStatus)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "enrollment not found")
	}
	return helper.JsonUpdated(c, "enrollment status updated", fiber.Map{
		"enrollment_id":     id,
		"enrollment_status": in.EnrollmentStatus,
	})
}
