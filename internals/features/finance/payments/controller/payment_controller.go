// internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	dto "sekolahku_backend/internals/features/finance/payments/dto"
	payModel "sekolahku_backend/internals/features/finance/payments/model"
	paymentService "sekolahku_backend/internals/features/finance/payments/service"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type PaymentHandler struct {
	DB *gorm.DB
}

// fee harus milik school yang sama; dipakai semua write path
func (h *PaymentHandler) findFee(schoolID, feeID uuid.UUID) (feeModel.FeeScheduleModel, error) {
	var fee feeModel.FeeScheduleModel
	err := h.DB.First(&fee,
		"fee_schedule_id = ? AND fee_schedule_school_id = ?", feeID, schoolID).Error
	return fee, err
}

func (h *PaymentHandler) findStudent(schoolID, studentID uuid.UUID) (studentModel.StudentProfileModel, error) {
	var st studentModel.StudentProfileModel
	err := h.DB.First(&st,
		"student_id = ? AND student_school_id = ?", studentID, schoolID).Error
	return st, err
}

/* =======================================================
   MANUAL RECORDING (STAFF)
======================================================= */

// POST /api/a/payments
func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.PaymentRecordDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if _, err := h.findFee(schoolID, in.PaymentFeeScheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "fee schedule tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if _, err := h.findStudent(schoolID, in.PaymentStudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "student tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	paidAt := time.Now()
	if in.PaymentPaidAt != nil {
		paidAt = *in.PaymentPaidAt
	}

	m := payModel.PaymentModel{
		PaymentSchoolID:        schoolID,
		PaymentStudentID:       in.PaymentStudentID,
		PaymentFeeScheduleID:   in.PaymentFeeScheduleID,
		PaymentAmountCents:     in.PaymentAmountCents,
		PaymentPaidAt:          paidAt,
		PaymentDueDateOverride: in.PaymentDueDateOverride,
		PaymentMethod:          in.PaymentMethod,
		PaymentReference:       in.PaymentReference,
		PaymentNotes:           in.PaymentNotes,
		PaymentGatewayStatus:   payModel.PaymentGatewayStatusNone,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "payment recorded", dto.ToPaymentResponse(m))
}

// GET /api/a/payments?student_id=&fee_schedule_id=
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&payModel.PaymentModel{}).
		Where("payment_school_id = ?", schoolID)

	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("payment_student_id = ?", id)
	}
	if raw := c.Query("fee_schedule_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid fee_schedule_id")
		}
		q = q.Where("payment_fee_schedule_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []payModel.PaymentModel
	if err := q.
		Order("payment_paid_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToPaymentResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// DELETE /api/a/payments/:id — soft delete untuk koreksi salah input
func (h *PaymentHandler) DeletePayment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	res := h.DB.Where(
		"payment_id = ? AND payment_school_id = ?", id, schoolID,
	).Delete(&payModel.PaymentModel{})
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "payment not found")
	}
	return helper.JsonDeleted(c, "payment deleted", fiber.Map{"payment_id": id})
}

/* =======================================================
   ONLINE CHECKOUT (MIDTRANS SNAP)
======================================================= */

// POST /api/u/payments/checkout
func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "school context missing")
	}

	var in dto.PaymentCheckoutDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	fee, err := h.findFee(schoolID, in.PaymentFeeScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "fee schedule tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	student, err := h.findStudent(schoolID, in.PaymentStudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, "student tidak ditemukan di school ini")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	orderID := fmt.Sprintf("SPP-%s", uuid.New().String())
	m := payModel.PaymentModel{
		PaymentSchoolID:      schoolID,
		PaymentStudentID:     in.PaymentStudentID,
		PaymentFeeScheduleID: in.PaymentFeeScheduleID,
		PaymentAmountCents:   in.PaymentAmountCents,
		PaymentPaidAt:        time.Now(),
		PaymentOrderID:       &orderID,
		PaymentGatewayStatus: payModel.PaymentGatewayStatusPending,
	}

	token, redirectURL, err := paymentService.GenerateSnapToken(m, fee.FeeScheduleName, paymentService.CustomerInput{
		FirstName: student.StudentName,
		Email:     in.CustomerEmail,
		Phone:     in.CustomerPhone,
	})
	if err != nil {
		return helper.JsonError(c, http.StatusBadGateway, "gateway error: "+err.Error())
	}

	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "checkout created", dto.PaymentCheckoutResponse{
		Payment:     dto.ToPaymentResponse(m),
		SnapToken:   token,
		RedirectURL: redirectURL,
	})
}

/* =======================================================
   WEBHOOK NOTIFICATION (NO AUTH)
======================================================= */

type midtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	SettlementTime    string `json:"settlement_time"`
}

func verifySignature(n midtransNotification, serverKey string) bool {
	raw := n.OrderID + n.StatusCode + n.GrossAmount + serverKey
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:]) == n.SignatureKey
}

// POST /api/payments/notification — dipanggil midtrans, tanpa bearer token
func (h *PaymentHandler) HandleNotification(serverKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var n midtransNotification
		if err := c.BodyParser(&n); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid json")
		}
		if n.OrderID == "" {
			return helper.JsonError(c, http.StatusBadRequest, "order_id required")
		}
		if !verifySignature(n, serverKey) {
			return helper.JsonError(c, http.StatusForbidden, "invalid signature")
		}

		var m payModel.PaymentModel
		if err := h.DB.First(&m, "payment_order_id = ?", n.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, http.StatusNotFound, "payment not found")
			}
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}

		// notifikasi bisa datang berkali-kali; settled bersifat final
		if m.PaymentGatewayStatus == payModel.PaymentGatewayStatusSettled {
			return helper.JsonOK(c, "already settled", fiber.Map{"order_id": n.OrderID})
		}

		m.PaymentGatewayStatus = paymentService.MapTransactionStatus(n.TransactionStatus, n.FraudStatus)
		m.PaymentGatewayPayload = datatypes.JSON(c.Body())
		if m.PaymentGatewayStatus == payModel.PaymentGatewayStatusSettled {
			if ts, err := time.Parse("2006-01-02 15:04:05", n.SettlementTime); err == nil {
				m.PaymentPaidAt = ts
			} else {
				m.PaymentPaidAt = time.Now()
			}
		}

		if err := h.DB.Save(&m).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		return helper.JsonOK(c, "notification processed", fiber.Map{
			"order_id": n.OrderID,
			"status":   m.PaymentGatewayStatus,
		})
	}
}
