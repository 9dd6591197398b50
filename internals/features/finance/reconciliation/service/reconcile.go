// internals/features/finance/reconciliation/service/reconcile.go
//
// Pipeline rekonsiliasi tagihan: resolver → classifier → aggregator → status.
// Murni (tanpa I/O, tanpa state): semua data sudah di-fetch oleh controller,
// context school/student/tahun ajaran dipass eksplisit. Dipakai bersama oleh
// endpoint ringkasan student, ringkasan anak (parent), dan analitik school.
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	paymentModel "sekolahku_backend/internals/features/finance/payments/model"
)

/* =======================================================
   TIPE OUTPUT
======================================================= */

type FeeStatus string

const (
	FeeStatusPaid          FeeStatus = "PAID"
	FeeStatusPartiallyPaid FeeStatus = "PARTIALLY_PAID"
	FeeStatusPending       FeeStatus = "PENDING"
	FeeStatusOverdue       FeeStatus = "OVERDUE"
)

// FeeStatusLine: satu baris status per fee schedule (pokok atau cicilan).
type FeeStatusLine struct {
	FeeScheduleID  uuid.UUID  `json:"fee_schedule_id"`
	FeeName        string     `json:"fee_name"`
	OwedCents      int64      `json:"owed_cents"`
	PaidCents      int64      `json:"paid_cents"`
	RemainingCents int64      `json:"remaining_cents"`
	Status         FeeStatus  `json:"status"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	IsInstallment  bool       `json:"is_installment"`
	ParentFeeID    *uuid.UUID `json:"parent_fee_id,omitempty"`
}

// Anomaly: keanehan data yang di-skip dari agregasi (bukan error request).
type Anomaly struct {
	Kind          string    `json:"kind"` // orphan_installment | legacy_unmatched | legacy_ambiguous
	FeeScheduleID uuid.UUID `json:"fee_schedule_id"`
	FeeName       string    `json:"fee_name"`
	Detail        string    `json:"detail"`
}

// Summary: hasil rekonsiliasi satu student.
type Summary struct {
	StudentID      uuid.UUID       `json:"student_id"`
	TotalDueCents  int64           `json:"total_due_cents"`
	TotalPaidCents int64           `json:"total_paid_cents"`
	// BalanceCents = totalDue − totalPaid, TIDAK di-clamp (negatif = lebih bayar).
	BalanceCents int64           `json:"balance_cents"`
	FeeLines     []FeeStatusLine `json:"fee_schedules"`
	Anomalies    []Anomaly       `json:"-"`
}

/* =======================================================
   INPUT
======================================================= */

// EnrollmentContext: data enrollment aktif yang relevan untuk applicability.
type EnrollmentContext struct {
	StudentID    uuid.UUID
	ClassroomID  uuid.UUID
	GradeLevelID uuid.UUID
}

// ReconcileInput: seluruh dataset yang dibutuhkan, sudah ter-fetch.
type ReconcileInput struct {
	// nil = student tidak punya enrollment aktif → summary nol.
	Enrollment *EnrollmentContext
	// Semua fee schedule milik school (pokok + cicilan).
	Fees []feeModel.FeeScheduleModel
	// Semua payment student ybs di school ini.
	Payments []paymentModel.PaymentModel
	// Jam "sekarang" untuk evaluasi OVERDUE (dipass supaya deterministik).
	Now time.Time
}

/* =======================================================
   1) FEE APPLICABILITY RESOLVER
======================================================= */

// ResolveApplicableFees memilih fee schedule yang berlaku untuk satu enrollment:
//  1. scope classroom = classroom student, ATAU
//  2. scope grade level = grade level student DAN tanpa scope classroom, ATAU
//  3. tanpa scope sama sekali (berlaku seluruh school).
//
// Cicilan modern ikut bila tagihan pokoknya applicable (nested di bawah pokok,
// tidak dicocokkan scope-nya sendiri-sendiri).
func ResolveApplicableFees(fees []feeModel.FeeScheduleModel, enr EnrollmentContext) []feeModel.FeeScheduleModel {
	matchScope := func(f *feeModel.FeeScheduleModel) bool {
		if f.FeeScheduleClassroomID != nil {
			return *f.FeeScheduleClassroomID == enr.ClassroomID
		}
		if f.FeeScheduleGradeLevelID != nil {
			return *f.FeeScheduleGradeLevelID == enr.GradeLevelID
		}
		return true // school-wide
	}

	// pass 1: semua record yang match scope-nya sendiri
	matched := make(map[uuid.UUID]bool, len(fees))
	out := make([]feeModel.FeeScheduleModel, 0, len(fees))
	for i := range fees {
		if fees[i].FeeScheduleParentFeeID == nil && matchScope(&fees[i]) {
			matched[fees[i].FeeScheduleID] = true
			out = append(out, fees[i])
		}
	}
	knownIDs := make(map[uuid.UUID]bool, len(fees))
	for i := range fees {
		knownIDs[fees[i].FeeScheduleID] = true
	}

	// pass 2: cicilan modern ikut pokoknya. Induk yang ada tapi di luar
	// scope → cicilan memang tidak berlaku; induk yang tidak ada sama
	// sekali tetap diloloskan supaya Classify mencatatnya sebagai anomali.
	for i := range fees {
		f := &fees[i]
		if f.FeeScheduleParentFeeID == nil {
			continue
		}
		if matched[*f.FeeScheduleParentFeeID] || !knownIDs[*f.FeeScheduleParentFeeID] {
			out = append(out, *f)
		}
	}
	return out
}

/* =======================================================
   2) PRINCIPAL / INSTALLMENT CLASSIFIER
======================================================= */

// Classification: hasil partisi pokok vs cicilan.
type Classification struct {
	Principals                []feeModel.FeeScheduleModel
	InstallmentsByPrincipalID map[uuid.UUID][]feeModel.FeeScheduleModel
	Anomalies                 []Anomaly
}

// Classify mempartisi fee applicable menjadi pokok dan cicilan.
// Link eksplisit parent_fee_id selalu menang; pencocokan prefix nama hanya
// best-effort untuk record warisan yang belum dimigrasi. Cicilan yang tidak
// ketemu induknya (orphan / prefix tak match / prefix ambigu) dicatat sebagai
// anomali dan di-skip, bukan dilempar sebagai error.
func Classify(fees []feeModel.FeeScheduleModel) Classification {
	cls := Classification{
		InstallmentsByPrincipalID: make(map[uuid.UUID][]feeModel.FeeScheduleModel),
	}

	// index pokok: id + nama (nama bisa duplikat → ambigu untuk legacy match)
	principalByID := make(map[uuid.UUID]*feeModel.FeeScheduleModel)
	principalIDsByName := make(map[string][]uuid.UUID)
	for i := range fees {
		f := &fees[i]
		if f.IsPrincipal() {
			cls.Principals = append(cls.Principals, *f)
			principalByID[f.FeeScheduleID] = f
			principalIDsByName[f.FeeScheduleName] = append(principalIDsByName[f.FeeScheduleName], f.FeeScheduleID)
		}
	}

	for i := range fees {
		f := &fees[i]
		switch {
		case f.IsModernInstallment():
			parentID := *f.FeeScheduleParentFeeID
			if _, ok := principalByID[parentID]; !ok {
				cls.Anomalies = append(cls.Anomalies, Anomaly{
					Kind:          "orphan_installment",
					FeeScheduleID: f.FeeScheduleID,
					FeeName:       f.FeeScheduleName,
					Detail:        "parent_fee_id menunjuk pokok yang tidak ada / di luar scope",
				})
				continue
			}
			cls.InstallmentsByPrincipalID[parentID] = append(cls.InstallmentsByPrincipalID[parentID], *f)

		case f.IsLegacyInstallment():
			prefix := f.LegacyPrincipalName()
			candidates := principalIDsByName[prefix]
			switch len(candidates) {
			case 1:
				cls.InstallmentsByPrincipalID[candidates[0]] = append(cls.InstallmentsByPrincipalID[candidates[0]], *f)
			case 0:
				cls.Anomalies = append(cls.Anomalies, Anomaly{
					Kind:          "legacy_unmatched",
					FeeScheduleID: f.FeeScheduleID,
					FeeName:       f.FeeScheduleName,
					Detail:        "prefix \"" + prefix + "\" tidak match pokok mana pun",
				})
			default:
				cls.Anomalies = append(cls.Anomalies, Anomaly{
					Kind:          "legacy_ambiguous",
					FeeScheduleID: f.FeeScheduleID,
					FeeName:       f.FeeScheduleName,
					Detail:        "prefix \"" + prefix + "\" match lebih dari satu pokok",
				})
			}
		}
	}

	// urutan deterministik
	sort.SliceStable(cls.Principals, func(i, j int) bool {
		if cls.Principals[i].FeeSchedulePosition != cls.Principals[j].FeeSchedulePosition {
			return cls.Principals[i].FeeSchedulePosition < cls.Principals[j].FeeSchedulePosition
		}
		return cls.Principals[i].FeeScheduleName < cls.Principals[j].FeeScheduleName
	})
	for id := range cls.InstallmentsByPrincipalID {
		ins := cls.InstallmentsByPrincipalID[id]
		sort.SliceStable(ins, func(i, j int) bool {
			if ins[i].FeeSchedulePosition != ins[j].FeeSchedulePosition {
				return ins[i].FeeSchedulePosition < ins[j].FeeSchedulePosition
			}
			return ins[i].FeeScheduleName < ins[j].FeeScheduleName
		})
		cls.InstallmentsByPrincipalID[id] = ins
	}

	return cls
}

/* =======================================================
   3) PAYMENT AGGREGATOR
======================================================= */

// PaymentAggregate: hasil penjumlahan payment untuk satu fee schedule.
type PaymentAggregate struct {
	Count      int   `json:"count"`
	TotalCents int64 `json:"total_cents"`
}

// AggregatePayments menjumlah payment satu student untuk satu fee schedule.
// Payment gateway yang masih pending/failed tidak dihitung.
func AggregatePayments(payments []paymentModel.PaymentModel, feeScheduleID, studentID uuid.UUID) PaymentAggregate {
	var agg PaymentAggregate
	for i := range payments {
		p := &payments[i]
		if p.PaymentFeeScheduleID != feeScheduleID || p.PaymentStudentID != studentID {
			continue
		}
		if !p.CountsTowardBalance() {
			continue
		}
		agg.Count++
		agg.TotalCents += p.PaymentAmountCents
	}
	return agg
}

// AggregateForPrincipalAndInstallments menjumlah payment yang menuju pokok
// ATAU salah satu cicilannya, untuk satu student.
func AggregateForPrincipalAndInstallments(
	principal feeModel.FeeScheduleModel,
	installments []feeModel.FeeScheduleModel,
	payments []paymentModel.PaymentModel,
	studentID uuid.UUID,
) int64 {
	total := AggregatePayments(payments, principal.FeeScheduleID, studentID).TotalCents
	for i := range installments {
		total += AggregatePayments(payments, installments[i].FeeScheduleID, studentID).TotalCents
	}
	return total
}

/* =======================================================
   4) STATUS COMPUTER
======================================================= */

// ComputeStatus menentukan status + sisa per fee.
// Precedence: PAID > PARTIALLY_PAID > OVERDUE > PENDING.
// Lunas mengalahkan lewat-jatuh-tempo; sisa di-clamp ke 0.
func ComputeStatus(owedCents, paidCents int64, dueDate *time.Time, now time.Time) (FeeStatus, int64) {
	remaining := owedCents - paidCents
	if remaining < 0 {
		remaining = 0
	}
	switch {
	case paidCents >= owedCents:
		return FeeStatusPaid, remaining
	case paidCents > 0:
		return FeeStatusPartiallyPaid, remaining
	case dueDate != nil && dueDate.Before(now):
		return FeeStatusOverdue, remaining
	default:
		return FeeStatusPending, remaining
	}
}

/* =======================================================
   ORKESTRASI — satu student
======================================================= */

// Reconcile menjalankan pipeline lengkap untuk satu student.
//
// Mode per pokok (dihitung ulang setiap request, tidak disimpan):
//   - full-payment: ada payment langsung ke pokok → baris pokok saja,
//     paid = payment pokok (payment cicilan tidak ikut, anti double-count);
//   - installment: tidak ada payment langsung ke pokok & pokok punya cicilan →
//     satu baris per cicilan, pokok tidak ditampilkan sebagai baris terbayar.
//
// totalDue = Σ amount pokok saja (cicilan tidak pernah ikut — itu kewajiban
// yang sama dihitung dua kali). Balance = totalDue − totalPaid, tanpa clamp.
func Reconcile(in ReconcileInput) Summary {
	var sum Summary

	// student tanpa enrollment aktif = tanpa kewajiban, bukan error
	if in.Enrollment == nil {
		sum.FeeLines = []FeeStatusLine{}
		return sum
	}
	enr := *in.Enrollment
	sum.StudentID = enr.StudentID

	applicable := ResolveApplicableFees(in.Fees, enr)
	cls := Classify(applicable)
	sum.Anomalies = cls.Anomalies
	sum.FeeLines = make([]FeeStatusLine, 0, len(applicable))

	for i := range cls.Principals {
		principal := cls.Principals[i]
		installments := cls.InstallmentsByPrincipalID[principal.FeeScheduleID]

		sum.TotalDueCents += principal.FeeScheduleAmountCents

		directAgg := AggregatePayments(in.Payments, principal.FeeScheduleID, enr.StudentID)
		fullPaymentMode := directAgg.Count > 0

		if fullPaymentMode || len(installments) == 0 {
			status, remaining := ComputeStatus(
				principal.FeeScheduleAmountCents, directAgg.TotalCents,
				principal.FeeScheduleDueDate, in.Now,
			)
			sum.FeeLines = append(sum.FeeLines, FeeStatusLine{
				FeeScheduleID:  principal.FeeScheduleID,
				FeeName:        principal.FeeScheduleName,
				OwedCents:      principal.FeeScheduleAmountCents,
				PaidCents:      directAgg.TotalCents,
				RemainingCents: remaining,
				Status:         status,
				DueDate:        principal.FeeScheduleDueDate,
			})
			sum.TotalPaidCents += directAgg.TotalCents
			continue
		}

		// installment mode: tiap cicilan berdiri sendiri
		parentID := principal.FeeScheduleID
		for j := range installments {
			ins := installments[j]
			agg := AggregatePayments(in.Payments, ins.FeeScheduleID, enr.StudentID)
			status, remaining := ComputeStatus(
				ins.FeeScheduleAmountCents, agg.TotalCents,
				ins.FeeScheduleDueDate, in.Now,
			)
			sum.FeeLines = append(sum.FeeLines, FeeStatusLine{
				FeeScheduleID:  ins.FeeScheduleID,
				FeeName:        ins.FeeScheduleName,
				OwedCents:      ins.FeeScheduleAmountCents,
				PaidCents:      agg.TotalCents,
				RemainingCents: remaining,
				Status:         status,
				DueDate:        ins.FeeScheduleDueDate,
				IsInstallment:  true,
				ParentFeeID:    &parentID,
			})
			sum.TotalPaidCents += agg.TotalCents
		}
	}

	sum.BalanceCents = sum.TotalDueCents - sum.TotalPaidCents
	return sum
}
