package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pemisah nama untuk cicilan warisan (record lama tanpa parent_fee_id,
// pola nama "<nama pokok> - <label cicilan>").
const LegacyInstallmentSeparator = " - "

// --- MODEL fee_schedules ------------------------------------------------------
//
// Satu item tagihan. Scope berjenjang: classroom (paling spesifik) →
// grade level → school-wide (keduanya NULL). Classroom dan grade level
// mutually exclusive; divalidasi di write path.
// parent_fee_id NULL + nama tanpa " - " = tagihan pokok;
// parent_fee_id terisi = cicilan modern;
// parent_fee_id NULL + nama mengandung " - " = cicilan warisan (legacy).
type FeeScheduleModel struct {
	// PK
	FeeScheduleID uuid.UUID `gorm:"column:fee_schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_schedule_id"`

	// Tenant
	FeeScheduleSchoolID uuid.UUID `gorm:"column:fee_schedule_school_id;type:uuid;not null;index:idx_fee_schedules_tenant" json:"fee_schedule_school_id"`

	// Identitas & nominal (minor unit / sen)
	FeeScheduleName        string `gorm:"column:fee_schedule_name;size:120;not null" json:"fee_schedule_name"`
	FeeScheduleAmountCents int64  `gorm:"column:fee_schedule_amount_cents;not null;check:fee_schedule_amount_cents>=0" json:"fee_schedule_amount_cents"`

	// Jatuh tempo (opsional)
	FeeScheduleDueDate *time.Time `gorm:"column:fee_schedule_due_date;type:date" json:"fee_schedule_due_date,omitempty"`

	// Scope (classroom menang atas grade level; dua-duanya NULL = seluruh school)
	FeeScheduleClassroomID  *uuid.UUID `gorm:"column:fee_schedule_classroom_id;type:uuid;index" json:"fee_schedule_classroom_id,omitempty"`
	FeeScheduleGradeLevelID *uuid.UUID `gorm:"column:fee_schedule_grade_level_id;type:uuid;index" json:"fee_schedule_grade_level_id,omitempty"`

	// Link cicilan → tagihan pokok (NULL untuk pokok & record warisan)
	FeeScheduleParentFeeID *uuid.UUID `gorm:"column:fee_schedule_parent_fee_id;type:uuid;index:ix_fee_schedules_parent" json:"fee_schedule_parent_fee_id,omitempty"`

	// Urutan antar cicilan sesaudara
	FeeSchedulePosition int `gorm:"column:fee_schedule_position;not null;default:0" json:"fee_schedule_position"`

	// Timestamps
	FeeScheduleCreatedAt time.Time      `gorm:"column:fee_schedule_created_at;autoCreateTime" json:"fee_schedule_created_at"`
	FeeScheduleUpdatedAt time.Time      `gorm:"column:fee_schedule_updated_at;autoUpdateTime" json:"fee_schedule_updated_at"`
	FeeScheduleDeletedAt gorm.DeletedAt `gorm:"column:fee_schedule_deleted_at;index" json:"-"`
}

func (FeeScheduleModel) TableName() string { return "fee_schedules" }

// IsModernInstallment: punya link eksplisit ke tagihan pokok.
func (m *FeeScheduleModel) IsModernInstallment() bool {
	return m.FeeScheduleParentFeeID != nil
}

// IsLegacyInstallment: tanpa link eksplisit tapi namanya berpola warisan.
func (m *FeeScheduleModel) IsLegacyInstallment() bool {
	return m.FeeScheduleParentFeeID == nil &&
		strings.Contains(m.FeeScheduleName, LegacyInstallmentSeparator)
}

// IsPrincipal: tagihan pokok (bukan cicilan bentuk apa pun).
func (m *FeeScheduleModel) IsPrincipal() bool {
	return m.FeeScheduleParentFeeID == nil && !m.IsLegacyInstallment()
}

// LegacyPrincipalName: prefix nama sebelum " - " pertama (hanya bermakna
// untuk cicilan warisan).
func (m *FeeScheduleModel) LegacyPrincipalName() string {
	idx := strings.Index(m.FeeScheduleName, LegacyInstallmentSeparator)
	if idx < 0 {
		return m.FeeScheduleName
	}
	return m.FeeScheduleName[:idx]
}
