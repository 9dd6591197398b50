// internals/features/finance/fees/controller/fee_schedule_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/fees/dto"
	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =======================================================
   FEE SCHEDULES (AUTHORIZED + TENANT-SCOPED)
======================================================= */

type FeeScheduleHandler struct {
	DB *gorm.DB
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(param))
}

// validateScope: scope classroom & grade level mutually exclusive
// (classroom lebih spesifik dan menang; dua-duanya terisi = salah input).
func validateScope(classroomID, gradeLevelID *uuid.UUID) error {
	if classroomID != nil && gradeLevelID != nil {
		return errors.New("fee schedule tidak boleh punya scope classroom dan grade level sekaligus")
	}
	return nil
}

// POST /api/a/fees
func (h *FeeScheduleHandler) CreateFeeSchedule(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.FeeScheduleCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	// selalu set dari context (abaikan body)
	in.FeeScheduleSchoolID = schoolID

	// nominal negatif ditolak di write path, bukan dikoreksi saat read
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if err := validateScope(in.FeeScheduleClassroomID, in.FeeScheduleGradeLevelID); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	// parent fee (kalau ada) harus pokok milik school yang sama
	if in.FeeScheduleParentFeeID != nil {
		var parent feeModel.FeeScheduleModel
		if err := h.DB.First(&parent,
			"fee_schedule_id = ? AND fee_schedule_school_id = ?",
			*in.FeeScheduleParentFeeID, schoolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, http.StatusUnprocessableEntity, "parent fee tidak ditemukan di school ini")
			}
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		if parent.FeeScheduleParentFeeID != nil {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "parent fee harus tagihan pokok, bukan cicilan")
		}
	}

	m := dto.FeeScheduleCreateDTOToModel(in)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee schedule created", dto.ToFeeScheduleResponse(m))
}

// GET /api/a/fees — list per school, filter opsional classroom/grade level
func (h *FeeScheduleHandler) ListFeeSchedules(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&feeModel.FeeScheduleModel{}).
		Where("fee_schedule_school_id = ?", schoolID)

	if raw := c.Query("classroom_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid classroom_id")
		}
		q = q.Where("fee_schedule_classroom_id = ?", id)
	}
	if raw := c.Query("grade_level_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid grade_level_id")
		}
		q = q.Where("fee_schedule_grade_level_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []feeModel.FeeScheduleModel
	if err := q.
		Order("fee_schedule_position ASC, fee_schedule_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToFeeScheduleResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/fees/:id
func (h *FeeScheduleHandler) GetFeeSchedule(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var m feeModel.FeeScheduleModel
	if err := h.DB.First(&m,
		"fee_schedule_id = ? AND fee_schedule_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "fee schedule not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToFeeScheduleResponse(m))
}

// PATCH /api/a/fees/:id
func (h *FeeScheduleHandler) UpdateFeeSchedule(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in dto.FeeScheduleUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var m feeModel.FeeScheduleModel
	if err := h.DB.First(&m,
		"fee_schedule_id = ? AND fee_schedule_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "fee schedule not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	// school_id tidak boleh diubah lewat update; cukup apply field lain
	dto.ApplyFeeScheduleUpdate(&m, in)
	if err := validateScope(m.FeeScheduleClassroomID, m.FeeScheduleGradeLevelID); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "fee schedule updated", dto.ToFeeScheduleResponse(m))
}

// DELETE /api/a/fees/:id — soft delete; pokok yang masih punya cicilan ditolak
func (h *FeeScheduleHandler) DeleteFeeSchedule(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	id, err := parseUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var children int64
	if err := h.DB.Model(&feeModel.FeeScheduleModel{}).
		Where("fee_schedule_parent_fee_id = ?", id).
		Count(&children).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if children > 0 {
		return helper.JsonError(c, http.StatusConflict, "hapus cicilan dulu sebelum menghapus tagihan pokok")
	}

	res := h.DB.Where(
		"fee_schedule_id = ? AND fee_schedule_school_id = ?", id, schoolID,
	).Delete(&feeModel.FeeScheduleModel{})
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "fee schedule not found")
	}
	return helper.JsonDeleted(c, "fee schedule deleted", fiber.Map{"fee_schedule_id": id})
}
