package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolMemberModel menghubungkan user ↔ school dengan satu role.
// Klaim JWT (member/staff/admin school ids) dibangun dari tabel ini saat login.
type SchoolMemberModel struct {
	SchoolMemberID       uuid.UUID `gorm:"column:school_member_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_member_id"`
	SchoolMemberSchoolID uuid.UUID `gorm:"column:school_member_school_id;type:uuid;not null;index:idx_school_members_tenant,priority:1" json:"school_member_school_id"`
	SchoolMemberUserID   uuid.UUID `gorm:"column:school_member_user_id;type:uuid;not null;index:idx_school_members_tenant,priority:2;index:uniq_member_role,unique,priority:1" json:"school_member_user_id"`

	// owner | admin | teacher | parent | student
	SchoolMemberRole string `gorm:"column:school_member_role;type:varchar(20);not null;index:uniq_member_role,unique,priority:2" json:"school_member_role"`

	SchoolMemberCreatedAt time.Time      `gorm:"column:school_member_created_at;autoCreateTime" json:"school_member_created_at"`
	SchoolMemberDeletedAt gorm.DeletedAt `gorm:"column:school_member_deleted_at;index" json:"-"`
}

func (SchoolMemberModel) TableName() string { return "school_members" }
