package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status transaksi gateway
// =========================================================

type PaymentGatewayStatus string

const (
	PaymentGatewayStatusNone    PaymentGatewayStatus = ""        // dicatat manual oleh staf
	PaymentGatewayStatusPending PaymentGatewayStatus = "pending" // menunggu notifikasi midtrans
	PaymentGatewayStatusSettled PaymentGatewayStatus = "settled"
	PaymentGatewayStatusExpired PaymentGatewayStatus = "expired"
	PaymentGatewayStatusFailed  PaymentGatewayStatus = "failed"
)

// PaymentModel: satu transaksi pembayaran menuju satu fee schedule
// (pokok atau cicilan). Pembayaran pending gateway TIDAK ikut rekonsiliasi.
type PaymentModel struct {
	// PK
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	// Tenant + relasi
	PaymentSchoolID      uuid.UUID `gorm:"column:payment_school_id;type:uuid;not null;index:idx_payments_tenant" json:"payment_school_id"`
	PaymentStudentID     uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index:ix_payments_student" json:"payment_student_id"`
	PaymentFeeScheduleID uuid.UUID `gorm:"column:payment_fee_schedule_id;type:uuid;not null;index:ix_payments_fee" json:"payment_fee_schedule_id"`

	// Nominal (minor unit / sen)
	PaymentAmountCents int64 `gorm:"column:payment_amount_cents;not null;check:payment_amount_cents>0" json:"payment_amount_cents"`

	// Waktu bayar + override jatuh tempo (opsional)
	PaymentPaidAt          time.Time  `gorm:"column:payment_paid_at;not null;default:now();index" json:"payment_paid_at"`
	PaymentDueDateOverride *time.Time `gorm:"column:payment_due_date_override;type:date" json:"payment_due_date_override,omitempty"`

	// Metadata transaksi
	PaymentMethod    *string `gorm:"column:payment_method;size:30" json:"payment_method,omitempty"` // cash/transfer/gateway
	PaymentReference *string `gorm:"column:payment_reference;size:100" json:"payment_reference,omitempty"`
	PaymentNotes     *string `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`

	// Gateway (midtrans) — kosong untuk pencatatan manual
	PaymentOrderID        *string              `gorm:"column:payment_order_id;size:64;uniqueIndex" json:"payment_order_id,omitempty"`
	PaymentGatewayStatus  PaymentGatewayStatus `gorm:"column:payment_gateway_status;type:varchar(20);not null;default:''" json:"payment_gateway_status"`
	PaymentGatewayPayload datatypes.JSON       `gorm:"column:payment_gateway_payload;type:jsonb" json:"payment_gateway_payload,omitempty"`

	// Timestamps
	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (PaymentModel) TableName() string { return "payments" }

// CountsTowardBalance: pembayaran manual atau yang sudah settled saja
// yang dihitung rekonsiliasi.
func (m *PaymentModel) CountsTowardBalance() bool {
	return m.PaymentGatewayStatus == PaymentGatewayStatusNone ||
		m.PaymentGatewayStatus == PaymentGatewayStatusSettled
}
