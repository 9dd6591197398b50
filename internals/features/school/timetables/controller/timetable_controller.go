// internals/features/school/timetables/controller/timetable_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	ttModel "sekolahku_backend/internals/features/school/timetables/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type TimetableHandler struct {
	DB *gorm.DB
}

type SlotCreateRequest struct {
	TimetableSlotClassroomID  uuid.UUID      `json:"timetable_slot_classroom_id" validate:"required"`
	TimetableSlotTeacherID    *uuid.UUID     `json:"timetable_slot_teacher_id,omitempty"`
	TimetableSlotDayOfWeek    int            `json:"timetable_slot_day_of_week" validate:"required,gte=1,lte=7"`
	TimetableSlotStartMinutes int            `json:"timetable_slot_start_minutes" validate:"gte=0,lt=1440"`
	TimetableSlotEndMinutes   int            `json:"timetable_slot_end_minutes" validate:"gt=0,lte=1440"`
	TimetableSlotSubject      string         `json:"timetable_slot_subject" validate:"required,min=2,max=60"`
	TimetableSlotMeta         datatypes.JSON `json:"timetable_slot_meta,omitempty"`
}

// POST /api/a/timetable-slots
// Slot baru ditolak kalau beririsan dengan slot lain classroom yang sama.
func (h *TimetableHandler) CreateSlot(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in SlotCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if in.TimetableSlotEndMinutes <= in.TimetableSlotStartMinutes {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "end harus setelah start")
	}

	var room classModel.ClassroomModel
	if err := h.DB.First(&room,
		"classroom_id = ? AND classroom_school_id = ?", in.TimetableSlotClassroomID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "classroom tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	m := ttModel.TimetableSlotModel{
		TimetableSlotSchoolID:     schoolID,
		TimetableSlotClassroomID:  in.TimetableSlotClassroomID,
		TimetableSlotTeacherID:    in.TimetableSlotTeacherID,
		TimetableSlotDayOfWeek:    in.TimetableSlotDayOfWeek,
		TimetableSlotStartMinutes: in.TimetableSlotStartMinutes,
		TimetableSlotEndMinutes:   in.TimetableSlotEndMinutes,
		TimetableSlotSubject:      in.TimetableSlotSubject,
		TimetableSlotMeta:         in.TimetableSlotMeta,
	}

	var existing []ttModel.TimetableSlotModel
	if err := h.DB.
		Where("timetable_slot_classroom_id = ? AND timetable_slot_day_of_week = ?",
			in.TimetableSlotClassroomID, in.TimetableSlotDayOfWeek).
		Find(&existing).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	for i := range existing {
		if m.Overlaps(&existing[i]) {
			return helper.JsonError(c, http.StatusConflict,
				"slot beririsan dengan "+existing[i].TimetableSlotSubject)
		}
	}

	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "timetable slot created", m)
}

// GET /api/a/timetable-slots?classroom_id=&day=
func (h *TimetableHandler) ListSlots(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	q := h.DB.Where("timetable_slot_school_id = ?", schoolID)
	if raw := c.Query("classroom_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid classroom_id")
		}
		q = q.Where("timetable_slot_classroom_id = ?", id)
	}
	if day := c.QueryInt("day"); day >= 1 && day <= 7 {
		q = q.Where("timetable_slot_day_of_week = ?", day)
	}

	var rows []ttModel.TimetableSlotModel
	if err := q.
		Order("timetable_slot_day_of_week ASC, timetable_slot_start_minutes ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}

// DELETE /api/a/timetable-slots/:id
func (h *TimetableHandler) DeleteSlot(c *fiber.Ctx) error {
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

	res := h.DB.Where(
		"timetable_slot_id = ? AND timetable_slot_school_id = ?", id, schoolID,
	).Delete(&ttModel.TimetableSlotModel{})
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "slot not found")
	}
	return helper.JsonDeleted(c, "slot deleted", fiber.Map{"timetable_slot_id": id})
}
