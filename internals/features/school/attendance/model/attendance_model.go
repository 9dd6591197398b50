package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status kehadiran
// =========================================================

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusSick    AttendanceStatus = "sick"
	AttendanceStatusLeave   AttendanceStatus = "leave"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

// AttendanceSessionModel: satu pertemuan per classroom per tanggal.
type AttendanceSessionModel struct {
	AttendanceSessionID          uuid.UUID `gorm:"column:attendance_session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_session_id"`
	AttendanceSessionSchoolID    uuid.UUID `gorm:"column:attendance_session_school_id;type:uuid;not null;index:idx_attendance_sessions_tenant" json:"attendance_session_school_id"`
	AttendanceSessionClassroomID uuid.UUID `gorm:"column:attendance_session_classroom_id;type:uuid;not null;index:uniq_session_date,unique,priority:1" json:"attendance_session_classroom_id"`

	AttendanceSessionDate time.Time `gorm:"column:attendance_session_date;type:date;not null;index:uniq_session_date,unique,priority:2" json:"attendance_session_date"`
	AttendanceSessionNote *string   `gorm:"column:attendance_session_note;type:text" json:"attendance_session_note,omitempty"`

	AttendanceSessionCreatedAt time.Time      `gorm:"column:attendance_session_created_at;autoCreateTime" json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt time.Time      `gorm:"column:attendance_session_updated_at;autoUpdateTime" json:"attendance_session_updated_at"`
	AttendanceSessionDeletedAt gorm.DeletedAt `gorm:"column:attendance_session_deleted_at;index" json:"-"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

// AttendanceEntryModel: kehadiran satu student di satu session.
type AttendanceEntryModel struct {
	AttendanceEntryID        uuid.UUID `gorm:"column:attendance_entry_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_entry_id"`
	AttendanceEntrySchoolID  uuid.UUID `gorm:"column:attendance_entry_school_id;type:uuid;not null;index" json:"attendance_entry_school_id"`
	AttendanceEntrySessionID uuid.UUID `gorm:"column:attendance_entry_session_id;type:uuid;not null;index:uniq_entry_student,unique,priority:1" json:"attendance_entry_session_id"`
	AttendanceEntryStudentID uuid.UUID `gorm:"column:attendance_entry_student_id;type:uuid;not null;index:uniq_entry_student,unique,priority:2" json:"attendance_entry_student_id"`

	AttendanceEntryStatus AttendanceStatus `gorm:"column:attendance_entry_status;type:varchar(10);not null;default:'present'" json:"attendance_entry_status"`
	AttendanceEntryNote   *string          `gorm:"column:attendance_entry_note;type:text" json:"attendance_entry_note,omitempty"`

	AttendanceEntryCreatedAt time.Time      `gorm:"column:attendance_entry_created_at;autoCreateTime" json:"attendance_entry_created_at"`
	AttendanceEntryUpdatedAt time.Time      `gorm:"column:attendance_entry_updated_at;autoUpdateTime" json:"attendance_entry_updated_at"`
	AttendanceEntryDeletedAt gorm.DeletedAt `gorm:"column:attendance_entry_deleted_at;index" json:"-"`
}

func (AttendanceEntryModel) TableName() string { return "attendance_entries" }
