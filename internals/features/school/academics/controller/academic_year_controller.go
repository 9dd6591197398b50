// internals/features/school/academics/controller/academic_year_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicModel "sekolahku_backend/internals/features/school/academics/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AcademicYearHandler struct {
	DB *gorm.DB
}

type AcademicYearCreateRequest struct {
	AcademicYearName      string    `json:"academic_year_name" validate:"required,min=4,max=20"`
	AcademicYearStartDate time.Time `json:"academic_year_start_date" validate:"required"`
	AcademicYearEndDate   time.Time `json:"academic_year_end_date" validate:"required"`
}

// POST /api/a/academic-years
func (h *AcademicYearHandler) CreateAcademicYear(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var in AcademicYearCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if !in.AcademicYearEndDate.After(in.AcademicYearStartDate) {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "end date harus setelah start date")
	}

	m := academicModel.AcademicYearModel{
		AcademicYearSchoolID:  schoolID,
		AcademicYearName:      in.AcademicYearName,
		AcademicYearStartDate: in.AcademicYearStartDate,
		AcademicYearEndDate:   in.AcademicYearEndDate,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "academic year created", m)
}

// GET /api/a/academic-years
func (h *AcademicYearHandler) ListAcademicYears(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var rows []academicModel.AcademicYearModel
	if err := h.DB.
		Where("academic_year_school_id = ?", schoolID).
		Order("academic_year_start_date DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}

// POST /api/a/academic-years/:id/activate
// Satu tahun aktif per school; yang lain dinonaktifkan dalam satu transaksi.
func (h *AcademicYearHandler) ActivateAcademicYear(c *fiber.Ctx) error {
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

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&academicModel.AcademicYearModel{}).
			Where("academic_year_id = ? AND academic_year_school_id = ?", id, schoolID).
			Update("academic_year_is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&academicModel.AcademicYearModel{}).
			Where("academic_year_school_id = ? AND academic_year_id <> ?", schoolID, id).
			Update("academic_year_is_active", false).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "academic year not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "academic year activated", fiber.Map{"academic_year_id": id})
}

/* =======================================================
   TERMS
======================================================= */

type TermCreateRequest struct {
	TermAcademicYearID uuid.UUID `json:"term_academic_year_id" validate:"required"`
	TermName           string    `json:"term_name" validate:"required,min=2,max=40"`
	TermPosition       int       `json:"term_position" validate:"gte=1"`
	TermStartDate      time.Time `json:"term_start_date" validate:"required"`
	TermEndDate        time.Time `json:"term_end_date" validate:"required"`
}

// POST /api/a/terms
func (h *AcademicYearHandler) CreateTerm(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var in TermCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var year academicModel.AcademicYearModel
	if err := h.DB.First(&year,
		"academic_year_id = ? AND academic_year_school_id = ?",
		in.TermAcademicYearID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "academic year tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	m := academicModel.TermModel{
		TermSchoolID:       schoolID,
		TermAcademicYearID: in.TermAcademicYearID,
		TermName:           in.TermName,
		TermPosition:       in.TermPosition,
		TermStartDate:      in.TermStartDate,
		TermEndDate:        in.TermEndDate,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "term created", m)
}

// GET /api/a/terms?academic_year_id=
func (h *AcademicYearHandler) ListTerms(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	q := h.DB.Where("term_school_id = ?", schoolID)
	if raw := c.Query("academic_year_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("term_academic_year_id = ?", id)
	}

	var rows []academicModel.TermModel
	if err := q.Order("term_position ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}
