// internals/features/school/teachers/controller/teacher_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	teacherModel "sekolahku_backend/internals/features/school/teachers/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type TeacherHandler struct {
	DB *gorm.DB
}

type TeacherCreateRequest struct {
	TeacherName    string     `json:"teacher_name" validate:"required,min=2,max=100"`
	TeacherNIP     *string    `json:"teacher_nip,omitempty" validate:"omitempty,max=30"`
	TeacherSubject *string    `json:"teacher_subject,omitempty" validate:"omitempty,max=60"`
	TeacherPhone   *string    `json:"teacher_phone,omitempty" validate:"omitempty,max=30"`
	TeacherUserID  *uuid.UUID `json:"teacher_user_id,omitempty"`
}

type HomeroomAssignRequest struct {
	ClassroomID uuid.UUID `json:"classroom_id" validate:"required"`
}

// POST /api/a/teachers
func (h *TeacherHandler) CreateTeacher(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var in TeacherCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m := teacherModel.TeacherProfileModel{
		TeacherSchoolID: schoolID,
		TeacherUserID:   in.TeacherUserID,
		TeacherName:     strings.TrimSpace(in.TeacherName),
		TeacherNIP:      in.TeacherNIP,
		TeacherSubject:  in.TeacherSubject,
		TeacherPhone:    in.TeacherPhone,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "teacher created", m)
}

// GET /api/a/teachers?q=
func (h *TeacherHandler) ListTeachers(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	q := h.DB.Where("teacher_school_id = ?", schoolID)
	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		q = q.Where("teacher_name ILIKE ?", "%"+kw+"%")
	}

	var rows []teacherModel.TeacherProfileModel
	if err := q.Order("teacher_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}

// POST /api/a/teachers/:id/homeroom — jadikan wali kelas
func (h *TeacherHandler) AssignHomeroom(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	teacherID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in HomeroomAssignRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var t teacherModel.TeacherProfileModel
	if err := h.DB.First(&t,
		"teacher_id = ? AND teacher_school_id = ?", teacherID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "teacher not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	res := h.DB.Model(&classModel.ClassroomModel{}).
		Where("classroom_id = ? AND classroom_school_id = ?", in.ClassroomID, schoolID).
		Update("classroom_homeroom_teacher_id", teacherID)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "classroom tidak ditemukan di school ini")
	}
	return helper.JsonUpdated(c, "homeroom assigned", fiber.Map{
		"teacher_id":   teacherID,
		"classroom_id": in.ClassroomID,
	})
}
