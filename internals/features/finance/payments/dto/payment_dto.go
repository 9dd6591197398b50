package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/finance/payments/model"
)

/* =======================================================
   REQUEST DTO
======================================================= */

// Pencatatan manual oleh staf (cash/transfer yang sudah diterima).
type PaymentRecordDTO struct {
	PaymentStudentID       uuid.UUID  `json:"payment_student_id" validate:"required"`
	PaymentFeeScheduleID   uuid.UUID  `json:"payment_fee_schedule_id" validate:"required"`
	PaymentAmountCents     int64      `json:"payment_amount_cents" validate:"required,gt=0"`
	PaymentPaidAt          *time.Time `json:"payment_paid_at,omitempty"`
	PaymentDueDateOverride *time.Time `json:"payment_due_date_override,omitempty"`
	PaymentMethod          *string    `json:"payment_method,omitempty" validate:"omitempty,max=30"`
	PaymentReference       *string    `json:"payment_reference,omitempty" validate:"omitempty,max=100"`
	PaymentNotes           *string    `json:"payment_notes,omitempty"`
}

// Checkout online: bikin transaksi pending + snap token.
type PaymentCheckoutDTO struct {
	PaymentStudentID     uuid.UUID `json:"payment_student_id" validate:"required"`
	PaymentFeeScheduleID uuid.UUID `json:"payment_fee_schedule_id" validate:"required"`
	PaymentAmountCents   int64     `json:"payment_amount_cents" validate:"required,gt=0"`
	CustomerEmail        string    `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone        string    `json:"customer_phone" validate:"omitempty,max=20"`
}

/* =======================================================
   RESPONSE DTO
======================================================= */

type PaymentResponse struct {
	PaymentID              uuid.UUID                  `json:"payment_id"`
	PaymentSchoolID        uuid.UUID                  `json:"payment_school_id"`
	PaymentStudentID       uuid.UUID                  `json:"payment_student_id"`
	PaymentFeeScheduleID   uuid.UUID                  `json:"payment_fee_schedule_id"`
	PaymentAmountCents     int64                      `json:"payment_amount_cents"`
	PaymentPaidAt          time.Time                  `json:"payment_paid_at"`
	PaymentDueDateOverride *time.Time                 `json:"payment_due_date_override,omitempty"`
	PaymentMethod          *string                    `json:"payment_method,omitempty"`
	PaymentReference       *string                    `json:"payment_reference,omitempty"`
	PaymentNotes           *string                    `json:"payment_notes,omitempty"`
	PaymentOrderID         *string                    `json:"payment_order_id,omitempty"`
	PaymentGatewayStatus   model.PaymentGatewayStatus `json:"payment_gateway_status"`
	PaymentCreatedAt       time.Time                  `json:"payment_created_at"`
}

type PaymentCheckoutResponse struct {
	Payment     PaymentResponse `json:"payment"`
	SnapToken   string          `json:"snap_token"`
	RedirectURL string          `json:"redirect_url"`
}

func ToPaymentResponse(m model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:              m.PaymentID,
		PaymentSchoolID:        m.PaymentSchoolID,
		PaymentStudentID:       m.PaymentStudentID,
		PaymentFeeScheduleID:   m.PaymentFeeScheduleID,
		PaymentAmountCents:     m.PaymentAmountCents,
		PaymentPaidAt:          m.PaymentPaidAt,
		PaymentDueDateOverride: m.PaymentDueDateOverride,
		PaymentMethod:          m.PaymentMethod,
		PaymentReference:       m.PaymentReference,
		PaymentNotes:           m.PaymentNotes,
		PaymentOrderID:         m.PaymentOrderID,
		PaymentGatewayStatus:   m.PaymentGatewayStatus,
		PaymentCreatedAt:       m.PaymentCreatedAt,
	}
}

func ToPaymentResponses(ms []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}
