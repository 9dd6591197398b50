// internals/features/school/classes/controller/classroom_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ClassHandler struct {
	DB *gorm.DB
}

/* =======================================================
   GRADE LEVELS
======================================================= */

type GradeLevelCreateRequest struct {
	GradeLevelName     string `json:"grade_level_name" validate:"required,min=1,max=40"`
	GradeLevelPosition int    `json:"grade_level_position" validate:"gte=1"`
}

// POST /api/a/grade-levels
func (h *ClassHandler) CreateGradeLevel(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var in GradeLevelCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m := classModel.GradeLevelModel{
		GradeLevelSchoolID: schoolID,
		GradeLevelName:     in.GradeLevelName,
		GradeLevelPosition: in.GradeLevelPosition,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "grade level created", m)
}

// GET /api/a/grade-levels
func (h *ClassHandler) ListGradeLevels(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var rows []classModel.GradeLevelModel
	if err := h.DB.
		Where("grade_level_school_id = ?", schoolID).
		Order("grade_level_position ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}

/* =======================================================
   CLASSROOMS
======================================================= */

type ClassroomCreateRequest struct {
	ClassroomGradeLevelID uuid.UUID `json:"classroom_grade_level_id" validate:"required"`
	ClassroomName         string    `json:"classroom_name" validate:"required,min=1,max=60"`
	ClassroomCapacity     int       `json:"classroom_capacity" validate:"gte=0"`
}

type ClassroomUpdateRequest struct {
	ClassroomName     *string `json:"classroom_name,omitempty" validate:"omitempty,min=1,max=60"`
	ClassroomCapacity *int    `json:"classroom_capacity,omitempty" validate:"omitempty,gte=0"`
}

// POST /api/a/classrooms
func (h *ClassHandler) CreateClassroom(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var in ClassroomCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var grade classModel.GradeLevelModel
	if err := h.DB.First(&grade,
		"grade_level_id = ? AND grade_level_school_id = ?",
		in.ClassroomGradeLevelID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "grade level tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	m := classModel.ClassroomModel{
		ClassroomSchoolID:     schoolID,
		ClassroomGradeLevelID: in.ClassroomGradeLevelID,
		ClassroomName:         in.ClassroomName,
		ClassroomCapacity:     in.ClassroomCapacity,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "classroom created", m)
}

// GET /api/a/classrooms?grade_level_id=
func (h *ClassHandler) ListClassrooms(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	q := h.DB.Where("classroom_school_id = ?", schoolID)
	if raw := c.Query("grade_level_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid grade_level_id")
		}
		q = q.Where("classroom_grade_level_id = ?", id)
	}

	var rows []classModel.ClassroomModel
	if err := q.Order("classroom_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}

// PATCH /api/a/classrooms/:id
func (h *ClassHandler) UpdateClassroom(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in ClassroomUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var m classModel.ClassroomModel
	if err := h.DB.First(&m,
		"classroom_id = ? AND classroom_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "classroom not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	if in.ClassroomName != nil {
		m.ClassroomName = *in.ClassroomName
	}
	if in.ClassroomCapacity != nil {
		m.ClassroomCapacity = *in.ClassroomCapacity
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "classroom updated", m)
}
