// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "sekolahku_backend/internals/features/finance/fees/controller"
	paymentController "sekolahku_backend/internals/features/finance/payments/controller"
	reconController "sekolahku_backend/internals/features/finance/reconciliation/controller"
	"sekolahku_backend/internals/configs"
)

// FinanceRoutes: fee schedules, payments, dan rekonsiliasi tagihan.
func FinanceRoutes(api fiber.Router, db *gorm.DB) {
	feeCtl := &feeController.FeeScheduleHandler{DB: db}
	payCtl := &paymentController.PaymentHandler{DB: db}
	reconCtl := reconController.NewReconciliationHandler(db)

	// ---------- staff/admin ----------
	admin := api.Group("/a")

	admin.Post("/fees", feeCtl.CreateFeeSchedule)
	admin.Get("/fees", feeCtl.ListFeeSchedules)
	admin.Get("/fees/:id", feeCtl.GetFeeSchedule)
	admin.Patch("/fees/:id", feeCtl.UpdateFeeSchedule)
	admin.Delete("/fees/:id", feeCtl.DeleteFeeSchedule)

	admin.Post("/payments", payCtl.RecordPayment)
	admin.Get("/payments", payCtl.ListPayments)
	admin.Delete("/payments/:id", payCtl.DeletePayment)

	admin.Get("/reconciliation/students/:student_id", reconCtl.GetStudentSummary)
	admin.Get("/reconciliation/analytics", reconCtl.GetSchoolAnalytics)

	// ---------- user (parent/student) ----------
	user := api.Group("/u")
	user.Post("/payments/checkout", payCtl.Checkout)
	user.Get("/reconciliation/children", reconCtl.GetChildrenSummaries)
	user.Get("/reconciliation/students/:student_id", reconCtl.GetStudentSummary)

	// ---------- webhook midtrans (di-skip auth lewat skipPaths) ----------
	api.Post("/payments/notification",
		payCtl.HandleNotification(configs.GetEnv("MIDTRANS_SERVER_KEY")))
}
