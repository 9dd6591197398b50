package dto

import (
	"time"

	"github.com/google/uuid"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
)

// Create
type FeeScheduleCreateDTO struct {
	FeeScheduleSchoolID uuid.UUID `json:"fee_schedule_school_id"`

	FeeScheduleName        string `json:"fee_schedule_name" validate:"required,max=120"`
	FeeScheduleAmountCents int64  `json:"fee_schedule_amount_cents" validate:"gte=0"`

	FeeScheduleDueDate      *time.Time `json:"fee_schedule_due_date,omitempty"`
	FeeScheduleClassroomID  *uuid.UUID `json:"fee_schedule_classroom_id,omitempty"`
	FeeScheduleGradeLevelID *uuid.UUID `json:"fee_schedule_grade_level_id,omitempty"`
	FeeScheduleParentFeeID  *uuid.UUID `json:"fee_schedule_parent_fee_id,omitempty"`
	FeeSchedulePosition     int        `json:"fee_schedule_position"`
}

// Update (partial)
type FeeScheduleUpdateDTO struct {
	FeeScheduleName        *string    `json:"fee_schedule_name,omitempty" validate:"omitempty,max=120"`
	FeeScheduleAmountCents *int64     `json:"fee_schedule_amount_cents,omitempty" validate:"omitempty,gte=0"`
	FeeScheduleDueDate     *time.Time `json:"fee_schedule_due_date,omitempty"`
	FeeScheduleClassroomID  *uuid.UUID `json:"fee_schedule_classroom_id,omitempty"`
	FeeScheduleGradeLevelID *uuid.UUID `json:"fee_schedule_grade_level_id,omitempty"`
	FeeScheduleParentFeeID  *uuid.UUID `json:"fee_schedule_parent_fee_id,omitempty"`
	FeeSchedulePosition     *int       `json:"fee_schedule_position,omitempty"`
}

// Response
type FeeScheduleResponse struct {
	FeeScheduleID       uuid.UUID `json:"fee_schedule_id"`
	FeeScheduleSchoolID uuid.UUID `json:"fee_schedule_school_id"`

	FeeScheduleName        string     `json:"fee_schedule_name"`
	FeeScheduleAmountCents int64      `json:"fee_schedule_amount_cents"`
	FeeScheduleDueDate     *time.Time `json:"fee_schedule_due_date,omitempty"`

	FeeScheduleClassroomID  *uuid.UUID `json:"fee_schedule_classroom_id,omitempty"`
	FeeScheduleGradeLevelID *uuid.UUID `json:"fee_schedule_grade_level_id,omitempty"`
	FeeScheduleParentFeeID  *uuid.UUID `json:"fee_schedule_parent_fee_id,omitempty"`
	FeeSchedulePosition     int        `json:"fee_schedule_position"`

	FeeScheduleCreatedAt time.Time `json:"fee_schedule_created_at"`
	FeeScheduleUpdatedAt time.Time `json:"fee_schedule_updated_at"`
}

func ToFeeScheduleResponse(m feeModel.FeeScheduleModel) FeeScheduleResponse {
	return FeeScheduleResponse{
		FeeScheduleID:           m.FeeScheduleID,
		FeeScheduleSchoolID:     m.FeeScheduleSchoolID,
		FeeScheduleName:         m.FeeScheduleName,
		FeeScheduleAmountCents:  m.FeeScheduleAmountCents,
		FeeScheduleDueDate:      m.FeeScheduleDueDate,
		FeeScheduleClassroomID:  m.FeeScheduleClassroomID,
		FeeScheduleGradeLevelID: m.FeeScheduleGradeLevelID,
		FeeScheduleParentFeeID:  m.FeeScheduleParentFeeID,
		FeeSchedulePosition:     m.FeeSchedulePosition,
		FeeScheduleCreatedAt:    m.FeeScheduleCreatedAt,
		FeeScheduleUpdatedAt:    m.FeeScheduleUpdatedAt,
	}
}

func ToFeeScheduleResponses(ms []feeModel.FeeScheduleModel) []FeeScheduleResponse {
	out := make([]FeeScheduleResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToFeeScheduleResponse(m))
	}
	return out
}

// FeeScheduleCreateDTOToModel merakit model dari DTO create.
func FeeScheduleCreateDTOToModel(in FeeScheduleCreateDTO) feeModel.FeeScheduleModel {
	return feeModel.FeeScheduleModel{
		FeeScheduleSchoolID:     in.FeeScheduleSchoolID,
		FeeScheduleName:         in.FeeScheduleName,
		FeeScheduleAmountCents:  in.FeeScheduleAmountCents,
		FeeScheduleDueDate:      in.FeeScheduleDueDate,
		FeeScheduleClassroomID:  in.FeeScheduleClassroomID,
		FeeScheduleGradeLevelID: in.FeeScheduleGradeLevelID,
		FeeScheduleParentFeeID:  in.FeeScheduleParentFeeID,
		FeeSchedulePosition:     in.FeeSchedulePosition,
	}
}

// ApplyFeeScheduleUpdate menerapkan field non-nil dari DTO update ke model.
func ApplyFeeScheduleUpdate(m *feeModel.FeeScheduleModel, in FeeScheduleUpdateDTO) {
	if in.FeeScheduleName != nil {
		m.FeeScheduleName = *in.FeeScheduleName
	}
	if in.FeeScheduleAmountCents != nil {
		m.FeeScheduleAmountCents = *in.FeeScheduleAmountCents
	}
	if in.FeeScheduleDueDate != nil {
		m.FeeScheduleDueDate = in.FeeScheduleDueDate
	}
	if in.FeeScheduleClassroomID != nil {
		m.FeeScheduleClassroomID = in.FeeScheduleClassroomID
	}
	if in.FeeScheduleGradeLevelID != nil {
		m.FeeScheduleGradeLevelID = in.FeeScheduleGradeLevelID
	}
	if in.FeeScheduleParentFeeID != nil {
		m.FeeScheduleParentFeeID = in.FeeScheduleParentFeeID
	}
	if in.FeeSchedulePosition != nil {
		m.FeeSchedulePosition = *in.FeeSchedulePosition
	}
}
