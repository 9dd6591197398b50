// internals/features/finance/reconciliation/controller/reconciliation_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	payModel "sekolahku_backend/internals/features/finance/payments/model"
	reconService "sekolahku_backend/internals/features/finance/reconciliation/service"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ReconciliationHandler struct {
	DB *gorm.DB

	// cache analitik per school; rekonsiliasi per-student tidak dicache
	// karena harus selalu mencerminkan payment terbaru.
	analyticsCache *gocache.Cache
}

func NewReconciliationHandler(db *gorm.DB) *ReconciliationHandler {
	return &ReconciliationHandler{
		DB:             db,
		analyticsCache: gocache.New(2*time.Minute, 10*time.Minute),
	}
}

/* =======================================================
   DATA LOADING
======================================================= */

// activeEnrollmentContext: enrollment aktif student + grade level dari classroom.
// nil tanpa error kalau student tidak punya enrollment aktif.
func (h *ReconciliationHandler) activeEnrollmentContext(schoolID, studentID uuid.UUID) (*reconService.EnrollmentContext, error) {
	var enr studentModel.EnrollmentModel
	err := h.DB.
		Where("enrollment_school_id = ? AND enrollment_student_id = ? AND enrollment_status = ?",
			schoolID, studentID, studentModel.EnrollmentStatusActive).
		Order("enrollment_enrolled_at DESC").
		First(&enr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var room classModel.ClassroomModel
	if err := h.DB.First(&room, "classroom_id = ?", enr.EnrollmentClassroomID).Error; err != nil {
		return nil, err
	}

	return &reconService.EnrollmentContext{
		StudentID:    studentID,
		ClassroomID:  room.ClassroomID,
		GradeLevelID: room.ClassroomGradeLevelID,
	}, nil
}

// paidDateUpperBound: batas eksklusif untuk tanggal paid_to inklusif.
func paidDateUpperBound(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// paidFrom/paidTo membatasi payment yang ikut dihitung (inklusif per tanggal);
// nil = tanpa batas.
func (h *ReconciliationHandler) reconcileStudent(schoolID, studentID uuid.UUID, now time.Time, paidFrom, paidTo *time.Time) (reconService.Summary, error) {
	enr, err := h.activeEnrollmentContext(schoolID, studentID)
	if err != nil {
		return reconService.Summary{}, err
	}

	var fees []feeModel.FeeScheduleModel
	if err := h.DB.
		Where("fee_schedule_school_id = ?", schoolID).
		Find(&fees).Error; err != nil {
		return reconService.Summary{}, err
	}

	payQ := h.DB.
		Where("payment_school_id = ? AND payment_student_id = ?", schoolID, studentID)
	if paidFrom != nil {
		payQ = payQ.Where("payment_paid_at >= ?", *paidFrom)
	}
	if paidTo != nil {
		payQ = payQ.Where("payment_paid_at < ?", paidDateUpperBound(*paidTo))
	}

	var payments []payModel.PaymentModel
	if err := payQ.Find(&payments).Error; err != nil {
		return reconService.Summary{}, err
	}

	sum := reconService.Reconcile(reconService.ReconcileInput{
		Enrollment: enr,
		Fees:       fees,
		Payments:   payments,
		Now:        now,
	})
	sum.StudentID = studentID

	for _, a := range sum.Anomalies {
		log.Printf("[RECON] school=%s student=%s anomaly=%s fee=%s (%s): %s",
			schoolID, studentID, a.Kind, a.FeeScheduleID, a.FeeName, a.Detail)
	}
	return sum, nil
}

/* =======================================================
   SUMMARY PER STUDENT (STAFF ATAU STUDENT SENDIRI)
======================================================= */

// ownsStudentProfile: profil student tertaut ke user caller.
func ownsStudentProfile(profile studentModel.StudentProfileModel, userID uuid.UUID) bool {
	return profile.StudentUserID != nil && *profile.StudentUserID == userID
}

// GET /api/a/reconciliation/students/:student_id (staf)
// GET /api/u/reconciliation/students/:student_id (student ybs)
func (h *ReconciliationHandler) GetStudentSummary(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
	}

	var st studentModel.StudentProfileModel
	if err := h.DB.First(&st,
		"student_id = ? AND student_school_id = ?", studentID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	// staf school boleh lihat siapa pun; selain itu hanya student sendiri
	if !helperAuth.IsStaffSchool(c, schoolID) {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonError(c, http.StatusUnauthorized, "unauthorized")
		}
		if !ownsStudentProfile(st, userID) {
			return helper.JsonError(c, http.StatusForbidden, "bukan staf dan bukan student ybs")
		}
	}

	sum, err := h.reconcileStudent(schoolID, studentID, time.Now(), nil, nil)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", sum)
}

/* =======================================================
   PARENT — SUMMARY SEMUA ANAK
======================================================= */

type childSummary struct {
	StudentID   uuid.UUID            `json:"student_id"`
	StudentName string               `json:"student_name"`
	Summary     reconService.Summary `json:"summary"`
}

// GET /api/u/reconciliation/children — untuk wali: semua anak yang tertaut
// lewat guardians.guardian_user_id.
func (h *ReconciliationHandler) GetChildrenSummaries(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "school context missing")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	var students []studentModel.StudentProfileModel
	if err := h.DB.
		Joins("JOIN student_guardians sg ON sg.student_guardian_student_id = student_profiles.student_id AND sg.student_guardian_deleted_at IS NULL").
		Joins("JOIN guardians g ON g.guardian_id = sg.student_guardian_guardian_id AND g.guardian_deleted_at IS NULL").
		Where("g.guardian_user_id = ? AND student_profiles.student_school_id = ?", userID, schoolID).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	out := make([]childSummary, 0, len(students))
	for _, st := range students {
		sum, err := h.reconcileStudent(schoolID, st.StudentID, now, nil, nil)
		if err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		out = append(out, childSummary{
			StudentID:   st.StudentID,
			StudentName: st.StudentName,
			Summary:     sum,
		})
	}
	return helper.JsonOK(c, "", fiber.Map{"children": out})
}

/* =======================================================
   STAFF — ANALITIK SCHOOL-WIDE (CACHED)
======================================================= */

type schoolAnalytics struct {
	SchoolID          uuid.UUID `json:"school_id"`
	StudentCount      int       `json:"student_count"`
	TotalDueCents     int64     `json:"total_due_cents"`
	TotalPaidCents    int64     `json:"total_paid_cents"`
	TotalBalanceCents int64     `json:"total_balance_cents"`
	FullyPaidStudents int       `json:"fully_paid_students"`
	OverdueStudents   int       `json:"overdue_students"`
	AnomalyCount      int       `json:"anomaly_count"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// GET /api/a/reconciliation/analytics?classroom_id=&grade_level_id=
// Hasil dicache 2 menit per kombinasi filter; hitung ulang per student
// cukup mahal untuk school besar.
func (h *ReconciliationHandler) GetSchoolAnalytics(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid school context")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	classroomFilter := c.Query("classroom_id")
	gradeFilter := c.Query("grade_level_id")

	// as_of menggeser evaluasi OVERDUE (YYYY-MM-DD); default sekarang
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid as_of date")
		}
		asOf = parsed
	}

	// paid_from / paid_to membatasi payment yang dihitung (YYYY-MM-DD, inklusif)
	var paidFrom, paidTo *time.Time
	if raw := c.Query("paid_from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid paid_from date")
		}
		paidFrom = &parsed
	}
	if raw := c.Query("paid_to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid paid_to date")
		}
		paidTo = &parsed
	}

	cacheKey := fmt.Sprintf("analytics:%s:%s:%s:%s:%s:%s",
		schoolID, classroomFilter, gradeFilter, asOf.Format("2006-01-02"),
		c.Query("paid_from"), c.Query("paid_to"))

	if cached, ok := h.analyticsCache.Get(cacheKey); ok {
		return helper.JsonOK(c, "cached", cached)
	}

	q := h.DB.Model(&studentModel.EnrollmentModel{}).
		Select("enrollments.enrollment_student_id").
		Joins("JOIN classrooms cr ON cr.classroom_id = enrollments.enrollment_classroom_id AND cr.classroom_deleted_at IS NULL").
		Where("enrollments.enrollment_school_id = ? AND enrollments.enrollment_status = ?",
			schoolID, studentModel.EnrollmentStatusActive)

	if classroomFilter != "" {
		id, err := uuid.Parse(classroomFilter)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid classroom_id")
		}
		q = q.Where("enrollments.enrollment_classroom_id = ?", id)
	}
	if gradeFilter != "" {
		id, err := uuid.Parse(gradeFilter)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid grade_level_id")
		}
		q = q.Where("cr.classroom_grade_level_id = ?", id)
	}

	var studentIDs []uuid.UUID
	if err := q.Pluck("enrollments.enrollment_student_id", &studentIDs).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := schoolAnalytics{
		SchoolID:     schoolID,
		StudentCount: len(studentIDs),
		GeneratedAt:  time.Now(),
	}
	for _, sid := range studentIDs {
		sum, err := h.reconcileStudent(schoolID, sid, asOf, paidFrom, paidTo)
		if err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		out.TotalDueCents += sum.TotalDueCents
		out.TotalPaidCents += sum.TotalPaidCents
		out.TotalBalanceCents += sum.BalanceCents
		out.AnomalyCount += len(sum.Anomalies)

		fullyPaid := len(sum.FeeLines) > 0
		overdue := false
		for _, line := range sum.FeeLines {
			if line.Status != reconService.FeeStatusPaid {
				fullyPaid = false
			}
			if line.Status == reconService.FeeStatusOverdue {
				overdue = true
			}
		}
		if fullyPaid {
			out.FullyPaidStudents++
		}
		if overdue {
			out.OverdueStudents++
		}
	}

	h.analyticsCache.Set(cacheKey, out, gocache.DefaultExpiration)
	return helper.JsonOK(c, "", out)
}
