// internals/features/school/schools/controller/school_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type SchoolHandler struct {
	DB *gorm.DB
}

type SchoolCreateRequest struct {
	SchoolName    string  `json:"school_name" validate:"required,min=3,max=120"`
	SchoolSlug    string  `json:"school_slug" validate:"required,min=3,max=120"`
	SchoolAddress *string `json:"school_address,omitempty"`
	SchoolPhone   *string `json:"school_phone,omitempty" validate:"omitempty,max=30"`
}

type SchoolUpdateRequest struct {
	SchoolName     *string `json:"school_name,omitempty" validate:"omitempty,min=3,max=120"`
	SchoolAddress  *string `json:"school_address,omitempty"`
	SchoolPhone    *string `json:"school_phone,omitempty" validate:"omitempty,max=30"`
	SchoolIsActive *bool   `json:"school_is_active,omitempty"`
}

// POST /api/o/schools — hanya owner platform
func (h *SchoolHandler) CreateSchool(c *fiber.Ctx) error {
	if !helper.HasRole(c, constants.RoleOwner) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorOwner("school"))
	}

	var in SchoolCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m := schoolModel.SchoolModel{
		SchoolName:     strings.TrimSpace(in.SchoolName),
		SchoolSlug:     strings.ToLower(strings.TrimSpace(in.SchoolSlug)),
		SchoolAddress:  in.SchoolAddress,
		SchoolPhone:    in.SchoolPhone,
		SchoolIsActive: true,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		// pembuat otomatis jadi admin school baru
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		member := userModel.SchoolMemberModel{
			SchoolMemberSchoolID: m.SchoolID,
			SchoolMemberUserID:   userID,
			SchoolMemberRole:     constants.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return helper.JsonError(c, http.StatusConflict, "slug sudah dipakai")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "school created", m)
}

// GET /api/schools/:slug — publik, untuk landing / lookup tenant
func (h *SchoolHandler) GetSchoolBySlug(c *fiber.Ctx) error {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	if slug == "" {
		return helper.JsonError(c, http.StatusBadRequest, "slug required")
	}

	var m schoolModel.SchoolModel
	if err := h.DB.First(&m, "school_slug = ? AND school_is_active = TRUE", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "school not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", m)
}

// PATCH /api/a/schools/:school_id
func (h *SchoolHandler) UpdateSchool(c *fiber.Ctx) error {
	schoolID, err := uuid.Parse(c.Params("school_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var in SchoolUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var m schoolModel.SchoolModel
	if err := h.DB.First(&m, "school_id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "school not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	if in.SchoolName != nil {
		m.SchoolName = strings.TrimSpace(*in.SchoolName)
	}
	if in.SchoolAddress != nil {
		m.SchoolAddress = in.SchoolAddress
	}
	if in.SchoolPhone != nil {
		m.SchoolPhone = in.SchoolPhone
	}
	if in.SchoolIsActive != nil {
		m.SchoolIsActive = *in.SchoolIsActive
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "school updated", m)
}
