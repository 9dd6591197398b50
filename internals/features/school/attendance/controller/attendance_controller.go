// internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AttendanceHandler struct {
	DB *gorm.DB
}

type SessionCreateRequest struct {
	AttendanceSessionClassroomID uuid.UUID `json:"attendance_session_classroom_id" validate:"required"`
	AttendanceSessionDate        time.Time `json:"attendance_session_date" validate:"required"`
	AttendanceSessionNote        *string   `json:"attendance_session_note,omitempty"`
}

type EntryInput struct {
	AttendanceEntryStudentID uuid.UUID                 `json:"attendance_entry_student_id" validate:"required"`
	AttendanceEntryStatus    attModel.AttendanceStatus `json:"attendance_entry_status" validate:"required,oneof=present sick leave absent"`
	AttendanceEntryNote      *string                   `json:"attendance_entry_note,omitempty"`
}

type EntriesBulkRequest struct {
	Entries []EntryInput `json:"entries" validate:"required,min=1,dive"`
}

// POST /api/a/attendance/sessions
func (h *AttendanceHandler) CreateSession(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in SessionCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var room classModel.ClassroomModel
	if err := h.DB.First(&room,
		"classroom_id = ? AND classroom_school_id = ?", in.AttendanceSessionClassroomID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "classroom tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	m := attModel.AttendanceSessionModel{
		AttendanceSessionSchoolID:    schoolID,
		AttendanceSessionClassroomID: in.AttendanceSessionClassroomID,
		AttendanceSessionDate:        in.AttendanceSessionDate,
		AttendanceSessionNote:        in.AttendanceSessionNote,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		// unik per classroom per tanggal
		if strings.Contains(err.Error(), "duplicate") {
			return helper.JsonError(c, http.StatusConflict, "session untuk classroom & tanggal ini sudah ada")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "attendance session created", m)
}

// PUT /api/a/attendance/sessions/:id/entries — upsert kehadiran satu kelas sekaligus
func (h *AttendanceHandler) UpsertEntries(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in EntriesBulkRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var sess attModel.AttendanceSessionModel
	if err := h.DB.First(&sess,
		"attendance_session_id = ? AND attendance_session_school_id = ?", sessionID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "session not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	rows := make([]attModel.AttendanceEntryModel, 0, len(in.Entries))
	for _, e := range in.Entries {
		rows = append(rows, attModel.AttendanceEntryModel{
			AttendanceEntrySchoolID:  schoolID,
			AttendanceEntrySessionID: sessionID,
			AttendanceEntryStudentID: e.AttendanceEntryStudentID,
			AttendanceEntryStatus:    e.AttendanceEntryStatus,
			AttendanceEntryNote:      e.AttendanceEntryNote,
		})
	}
	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attendance_entry_session_id"}, {Name: "attendance_entry_student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"attendance_entry_status", "attendance_entry_note", "attendance_entry_updated_at"}),
	}).Create(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "entries saved", fiber.Map{
		"attendance_session_id": sessionID,
		"saved":                 len(rows),
	})
}

/* =======================================================
   RECAP PER STUDENT
======================================================= */

// GET /api/a/students/:student_id/attendance-recap?from=&to= (YYYY-MM-DD)
func (h *AttendanceHandler) GetStudentRecap(c *fiber.Ctx) error {
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

	q := h.DB.Table("attendance_entries").
		Select("attendance_entries.attendance_entry_status AS status, COUNT(*) AS total").
		Joins("JOIN attendance_sessions s ON s.attendance_session_id = attendance_entries.attendance_entry_session_id AND s.attendance_session_deleted_at IS NULL").
		Where("attendance_entries.attendance_entry_school_id = ? AND attendance_entries.attendance_entry_student_id = ? AND attendance_entries.attendance_entry_deleted_at IS NULL",
			schoolID, studentID)

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid from date")
		}
		q = q.Where("s.attendance_session_date >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid to date")
		}
		q = q.Where("s.attendance_session_date <= ?", to)
	}

	type row struct {
		Status string
		Total  int
	}
	var rows []row
	if err := q.Group("attendance_entries.attendance_entry_status").Scan(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	recap := fiber.Map{
		string(attModel.AttendanceStatusPresent): 0,
		string(attModel.AttendanceStatusSick):    0,
		string(attModel.AttendanceStatusLeave):   0,
		string(attModel.AttendanceStatusAbsent):  0,
	}
	total := 0
	for _, r := range rows {
		recap[r.Status] = r.Total
		total += r.Total
	}
	return helper.JsonOK(c, "", fiber.Map{
		"student_id": studentID,
		"recap":      recap,
		"total":      total,
	})
}
