package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TimetableSlotModel: satu slot jadwal per classroom.
// Menit-sejak-tengah-malam untuk start/end supaya cek overlap jadi aritmetika murni.
type TimetableSlotModel struct {
	TimetableSlotID          uuid.UUID  `gorm:"column:timetable_slot_id;type:uuid;default:gen_random_uuid();primaryKey" json:"timetable_slot_id"`
	TimetableSlotSchoolID    uuid.UUID  `gorm:"column:timetable_slot_school_id;type:uuid;not null;index:idx_timetable_slots_tenant" json:"timetable_slot_school_id"`
	TimetableSlotClassroomID uuid.UUID  `gorm:"column:timetable_slot_classroom_id;type:uuid;not null;index" json:"timetable_slot_classroom_id"`
	TimetableSlotTeacherID   *uuid.UUID `gorm:"column:timetable_slot_teacher_id;type:uuid;index" json:"timetable_slot_teacher_id,omitempty"`

	// 1=Senin .. 7=Minggu (ISO)
	TimetableSlotDayOfWeek    int    `gorm:"column:timetable_slot_day_of_week;not null;check:timetable_slot_day_of_week BETWEEN 1 AND 7" json:"timetable_slot_day_of_week"`
	TimetableSlotStartMinutes int    `gorm:"column:timetable_slot_start_minutes;not null" json:"timetable_slot_start_minutes"`
	TimetableSlotEndMinutes   int    `gorm:"column:timetable_slot_end_minutes;not null" json:"timetable_slot_end_minutes"`
	TimetableSlotSubject      string `gorm:"column:timetable_slot_subject;size:60;not null" json:"timetable_slot_subject"`

	// metadata bebas (ruangan, catatan, link materi)
	TimetableSlotMeta datatypes.JSON `gorm:"column:timetable_slot_meta;type:jsonb" json:"timetable_slot_meta,omitempty"`

	TimetableSlotCreatedAt time.Time      `gorm:"column:timetable_slot_created_at;autoCreateTime" json:"timetable_slot_created_at"`
	TimetableSlotUpdatedAt time.Time      `gorm:"column:timetable_slot_updated_at;autoUpdateTime" json:"timetable_slot_updated_at"`
	TimetableSlotDeletedAt gorm.DeletedAt `gorm:"column:timetable_slot_deleted_at;index" json:"-"`
}

func (TimetableSlotModel) TableName() string { return "timetable_slots" }

// Overlaps: dua slot tabrakan bila hari sama dan rentang menitnya beririsan.
func (m *TimetableSlotModel) Overlaps(other *TimetableSlotModel) bool {
	if m.TimetableSlotDayOfWeek != other.TimetableSlotDayOfWeek {
		return false
	}
	return m.TimetableSlotStartMinutes < other.TimetableSlotEndMinutes &&
		other.TimetableSlotStartMinutes < m.TimetableSlotEndMinutes
}
