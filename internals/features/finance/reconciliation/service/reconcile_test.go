package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	paymentModel "sekolahku_backend/internals/features/finance/payments/model"
)

var testNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newFee(schoolID uuid.UUID, name string, amount int64) feeModel.FeeScheduleModel {
	return feeModel.FeeScheduleModel{
		FeeScheduleID:          uuid.New(),
		FeeScheduleSchoolID:    schoolID,
		FeeScheduleName:        name,
		FeeScheduleAmountCents: amount,
	}
}

func newPayment(studentID, feeID uuid.UUID, amount int64) paymentModel.PaymentModel {
	return paymentModel.PaymentModel{
		PaymentID:            uuid.New(),
		PaymentStudentID:     studentID,
		PaymentFeeScheduleID: feeID,
		PaymentAmountCents:   amount,
		PaymentPaidAt:        testNow,
	}
}

/* =======================================================
   STATUS COMPUTER
======================================================= */

func TestComputeStatus(t *testing.T) {
	pastDue := datePtr(2024, time.January, 1)
	futureDue := datePtr(2024, time.December, 1)

	tests := []struct {
		name          string
		owed, paid    int64
		dueDate       *time.Time
		wantStatus    FeeStatus
		wantRemaining int64
	}{
		{"lunas persis", 100000, 100000, nil, FeeStatusPaid, 0},
		{"lebih bayar tetap PAID, sisa 0", 100000, 120000, nil, FeeStatusPaid, 0},
		{"sebagian", 100000, 60000, nil, FeeStatusPartiallyPaid, 40000},
		{"sebagian meski lewat jatuh tempo", 100000, 60000, pastDue, FeeStatusPartiallyPaid, 40000},
		{"nol bayar + lewat jatuh tempo", 100000, 0, pastDue, FeeStatusOverdue, 100000},
		{"nol bayar tanpa jatuh tempo", 100000, 0, nil, FeeStatusPending, 100000},
		{"nol bayar jatuh tempo di depan", 100000, 0, futureDue, FeeStatusPending, 100000},
		{"lunas mengalahkan overdue", 100000, 100000, pastDue, FeeStatusPaid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, remaining := ComputeStatus(tt.owed, tt.paid, tt.dueDate, testNow)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", remaining, tt.wantRemaining)
			}
			if remaining < 0 {
				t.Errorf("remaining harus >= 0, dapat %d", remaining)
			}
		})
	}
}

/* =======================================================
   FEE APPLICABILITY RESOLVER
======================================================= */

func TestResolveApplicableFees(t *testing.T) {
	schoolID := uuid.New()
	classroomID := uuid.New()
	otherClassroomID := uuid.New()
	gradeID := uuid.New()
	otherGradeID := uuid.New()

	enr := EnrollmentContext{
		StudentID:    uuid.New(),
		ClassroomID:  classroomID,
		GradeLevelID: gradeID,
	}

	schoolWide := newFee(schoolID, "Uang Gedung", 50000)

	classroomFee := newFee(schoolID, "Kas Kelas", 10000)
	classroomFee.FeeScheduleClassroomID = &classroomID

	otherClassroomFee := newFee(schoolID, "Kas Kelas Lain", 10000)
	otherClassroomFee.FeeScheduleClassroomID = &otherClassroomID

	gradeFee := newFee(schoolID, "Buku Paket", 30000)
	gradeFee.FeeScheduleGradeLevelID = &gradeID

	otherGradeFee := newFee(schoolID, "Buku Paket Jenjang Lain", 30000)
	otherGradeFee.FeeScheduleGradeLevelID = &otherGradeID

	// cicilan modern ikut pokoknya yang applicable, scope sendiri diabaikan
	installment := newFee(schoolID, "Buku Paket - Termin 1", 15000)
	installment.FeeScheduleParentFeeID = &gradeFee.FeeScheduleID

	// induk ada tapi di luar scope → cicilan ikut tidak berlaku
	outOfScopeInstallment := newFee(schoolID, "Buku Lain - Termin 1", 15000)
	outOfScopeInstallment.FeeScheduleParentFeeID = &otherGradeFee.FeeScheduleID

	// induk tidak ada sama sekali → tetap diloloskan untuk dicatat
	// sebagai anomali oleh Classify
	missingParent := uuid.New()
	orphanInstallment := newFee(schoolID, "Hilang - Termin 1", 15000)
	orphanInstallment.FeeScheduleParentFeeID = &missingParent

	fees := []feeModel.FeeScheduleModel{
		schoolWide, classroomFee, otherClassroomFee,
		gradeFee, otherGradeFee, installment,
		outOfScopeInstallment, orphanInstallment,
	}

	got := ResolveApplicableFees(fees, enr)

	want := map[uuid.UUID]bool{
		schoolWide.FeeScheduleID:        true,
		classroomFee.FeeScheduleID:      true,
		gradeFee.FeeScheduleID:          true,
		installment.FeeScheduleID:       true,
		orphanInstallment.FeeScheduleID: true,
	}
	if len(got) != len(want) {
		t.Fatalf("applicable = %d fee, want %d", len(got), len(want))
	}
	for _, f := range got {
		if !want[f.FeeScheduleID] {
			t.Errorf("fee %q tidak seharusnya applicable", f.FeeScheduleName)
		}
	}
}

func TestResolveApplicableFees_EmptyIsValid(t *testing.T) {
	schoolID := uuid.New()
	otherClassroom := uuid.New()
	fee := newFee(schoolID, "Kas Kelas", 10000)
	fee.FeeScheduleClassroomID = &otherClassroom

	got := ResolveApplicableFees([]feeModel.FeeScheduleModel{fee}, EnrollmentContext{
		StudentID:    uuid.New(),
		ClassroomID:  uuid.New(),
		GradeLevelID: uuid.New(),
	})
	if len(got) != 0 {
		t.Fatalf("want kosong, got %d", len(got))
	}
}

/* =======================================================
   CLASSIFIER
======================================================= */

func TestClassify_ModernAndLegacy(t *testing.T) {
	schoolID := uuid.New()

	tuition := newFee(schoolID, "SPP", 90000)
	t1 := newFee(schoolID, "SPP - Termin 1", 30000)
	t1.FeeScheduleParentFeeID = &tuition.FeeScheduleID
	t1.FeeSchedulePosition = 1
	t2 := newFee(schoolID, "SPP - Termin 2", 60000)
	t2.FeeScheduleParentFeeID = &tuition.FeeScheduleID
	t2.FeeSchedulePosition = 2

	// skenario 6: cicilan warisan match lewat prefix nama
	cafeteria := newFee(schoolID, "Cafeteria", 40000)
	legacy := newFee(schoolID, "Cafeteria - Tranche 1", 20000)

	cls := Classify([]feeModel.FeeScheduleModel{tuition, t1, t2, cafeteria, legacy})

	if len(cls.Principals) != 2 {
		t.Fatalf("principals = %d, want 2", len(cls.Principals))
	}
	for _, p := range cls.Principals {
		if p.FeeScheduleID == t1.FeeScheduleID || p.FeeScheduleID == legacy.FeeScheduleID {
			t.Errorf("cicilan %q ikut terhitung sebagai pokok", p.FeeScheduleName)
		}
	}
	if got := len(cls.InstallmentsByPrincipalID[tuition.FeeScheduleID]); got != 2 {
		t.Errorf("cicilan SPP = %d, want 2", got)
	}
	if got := len(cls.InstallmentsByPrincipalID[cafeteria.FeeScheduleID]); got != 1 {
		t.Errorf("cicilan Cafeteria = %d, want 1 (legacy prefix match)", got)
	}
	if len(cls.Anomalies) != 0 {
		t.Errorf("anomali = %v, want kosong", cls.Anomalies)
	}
}

func TestClassify_Anomalies(t *testing.T) {
	schoolID := uuid.New()
	missingParent := uuid.New()

	orphan := newFee(schoolID, "Seragam - Termin 1", 10000)
	orphan.FeeScheduleParentFeeID = &missingParent

	unmatched := newFee(schoolID, "Ekskul - Termin 1", 10000)

	dupA := newFee(schoolID, "Study Tour", 50000)
	dupB := newFee(schoolID, "Study Tour", 50000)
	ambiguous := newFee(schoolID, "Study Tour - DP", 25000)

	cls := Classify([]feeModel.FeeScheduleModel{orphan, unmatched, dupA, dupB, ambiguous})

	kinds := map[string]int{}
	for _, a := range cls.Anomalies {
		kinds[a.Kind]++
	}
	if kinds["orphan_installment"] != 1 {
		t.Errorf("orphan_installment = %d, want 1", kinds["orphan_installment"])
	}
	if kinds["legacy_unmatched"] != 1 {
		t.Errorf("legacy_unmatched = %d, want 1", kinds["legacy_unmatched"])
	}
	if kinds["legacy_ambiguous"] != 1 {
		t.Errorf("legacy_ambiguous = %d, want 1", kinds["legacy_ambiguous"])
	}
	// anomali tidak boleh masuk ke agregasi mana pun
	for _, ins := range cls.InstallmentsByPrincipalID {
		for _, f := range ins {
			if f.FeeScheduleID == orphan.FeeScheduleID || f.FeeScheduleID == ambiguous.FeeScheduleID {
				t.Errorf("fee anomali %q ikut teragregasi", f.FeeScheduleName)
			}
		}
	}
}

/* =======================================================
   PAYMENT AGGREGATOR
======================================================= */

func TestAggregatePayments_FiltersStudentAndPending(t *testing.T) {
	studentID := uuid.New()
	otherStudent := uuid.New()
	feeID := uuid.New()

	pending := newPayment(studentID, feeID, 70000)
	pending.PaymentGatewayStatus = paymentModel.PaymentGatewayStatusPending

	settled := newPayment(studentID, feeID, 30000)
	settled.PaymentGatewayStatus = paymentModel.PaymentGatewayStatusSettled

	payments := []paymentModel.PaymentModel{
		newPayment(studentID, feeID, 20000),
		newPayment(otherStudent, feeID, 99999), // student lain
		pending,                                // belum settled → tidak dihitung
		settled,
		newPayment(studentID, uuid.New(), 11111), // fee lain
	}

	agg := AggregatePayments(payments, feeID, studentID)
	if agg.Count != 2 {
		t.Errorf("count = %d, want 2", agg.Count)
	}
	if agg.TotalCents != 50000 {
		t.Errorf("total = %d, want 50000", agg.TotalCents)
	}
}

/* =======================================================
   RECONCILE — skenario lengkap
======================================================= */

func buildEnrollment() (EnrollmentContext, uuid.UUID) {
	schoolID := uuid.New()
	return EnrollmentContext{
		StudentID:    uuid.New(),
		ClassroomID:  uuid.New(),
		GradeLevelID: uuid.New(),
	}, schoolID
}

func TestReconcile_NoEnrollment(t *testing.T) {
	sum := Reconcile(ReconcileInput{Enrollment: nil, Now: testNow})
	if sum.TotalDueCents != 0 || sum.TotalPaidCents != 0 || sum.BalanceCents != 0 {
		t.Errorf("summary harus nol: %+v", sum)
	}
	if sum.FeeLines == nil || len(sum.FeeLines) != 0 {
		t.Errorf("fee lines harus slice kosong, got %v", sum.FeeLines)
	}
}

func TestReconcile_NoApplicableFees(t *testing.T) {
	enr, _ := buildEnrollment()
	sum := Reconcile(ReconcileInput{Enrollment: &enr, Now: testNow})
	if sum.TotalDueCents != 0 || sum.TotalPaidCents != 0 || sum.BalanceCents != 0 {
		t.Errorf("tanpa fee applicable semua total harus 0: %+v", sum)
	}
}

// Skenario 1 & 2: pembayaran sebagian lalu lunas.
func TestReconcile_SimplePrincipal(t *testing.T) {
	enr, schoolID := buildEnrollment()
	tuition := newFee(schoolID, "Tuition", 100000)

	tests := []struct {
		name          string
		paid          int64
		wantStatus    FeeStatus
		wantRemaining int64
	}{
		{"bayar sebagian", 60000, FeeStatusPartiallyPaid, 40000},
		{"bayar lunas", 100000, FeeStatusPaid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Reconcile(ReconcileInput{
				Enrollment: &enr,
				Fees:       []feeModel.FeeScheduleModel{tuition},
				Payments:   []paymentModel.PaymentModel{newPayment(enr.StudentID, tuition.FeeScheduleID, tt.paid)},
				Now:        testNow,
			})
			if len(sum.FeeLines) != 1 {
				t.Fatalf("fee lines = %d, want 1", len(sum.FeeLines))
			}
			line := sum.FeeLines[0]
			if line.Status != tt.wantStatus || line.RemainingCents != tt.wantRemaining {
				t.Errorf("line = %s/%d, want %s/%d", line.Status, line.RemainingCents, tt.wantStatus, tt.wantRemaining)
			}
			if sum.BalanceCents != 100000-tt.paid {
				t.Errorf("balance = %d, want %d", sum.BalanceCents, 100000-tt.paid)
			}
		})
	}
}

// Skenario 3: nol bayar lewat jatuh tempo.
func TestReconcile_Overdue(t *testing.T) {
	enr, schoolID := buildEnrollment()
	fee := newFee(schoolID, "Tuition", 100000)
	fee.FeeScheduleDueDate = datePtr(2024, time.January, 1)

	sum := Reconcile(ReconcileInput{
		Enrollment: &enr,
		Fees:       []feeModel.FeeScheduleModel{fee},
		Now:        testNow, // 2024-06-01
	})
	if sum.FeeLines[0].Status != FeeStatusOverdue {
		t.Errorf("status = %s, want OVERDUE", sum.FeeLines[0].Status)
	}
	if sum.FeeLines[0].RemainingCents != 100000 {
		t.Errorf("remaining = %d, want 100000", sum.FeeLines[0].RemainingCents)
	}
}

// Skenario 4: mode cicilan — payment hanya ke cicilan pertama.
func TestReconcile_InstallmentMode(t *testing.T) {
	enr, schoolID := buildEnrollment()

	principal := newFee(schoolID, "Fees", 90000)
	t1 := newFee(schoolID, "Fees - Termin 1", 30000)
	t1.FeeScheduleParentFeeID = &principal.FeeScheduleID
	t1.FeeSchedulePosition = 1
	t2 := newFee(schoolID, "Fees - Termin 2", 60000)
	t2.FeeScheduleParentFeeID = &principal.FeeScheduleID
	t2.FeeSchedulePosition = 2

	sum := Reconcile(ReconcileInput{
		Enrollment: &enr,
		Fees:       []feeModel.FeeScheduleModel{principal, t1, t2},
		Payments:   []paymentModel.PaymentModel{newPayment(enr.StudentID, t1.FeeScheduleID, 30000)},
		Now:        testNow,
	})

	// totalDue = pokok saja, bukan pokok + cicilan
	if sum.TotalDueCents != 90000 {
		t.Errorf("totalDue = %d, want 90000", sum.TotalDueCents)
	}
	if sum.TotalPaidCents != 30000 {
		t.Errorf("totalPaid = %d, want 30000", sum.TotalPaidCents)
	}

	// baris = cicilan saja; pokok tidak tampil sebagai baris terbayar
	if len(sum.FeeLines) != 2 {
		t.Fatalf("fee lines = %d, want 2", len(sum.FeeLines))
	}
	for _, line := range sum.FeeLines {
		if line.FeeScheduleID == principal.FeeScheduleID {
			t.Errorf("pokok tidak boleh tampil sebagai baris di mode cicilan")
		}
		if !line.IsInstallment {
			t.Errorf("baris %q harus bertanda cicilan", line.FeeName)
		}
	}
	if sum.FeeLines[0].Status != FeeStatusPaid || sum.FeeLines[0].RemainingCents != 0 {
		t.Errorf("termin 1 = %s/%d, want PAID/0", sum.FeeLines[0].Status, sum.FeeLines[0].RemainingCents)
	}
	if sum.FeeLines[1].Status != FeeStatusPending || sum.FeeLines[1].RemainingCents != 60000 {
		t.Errorf("termin 2 = %s/%d, want PENDING/60000", sum.FeeLines[1].Status, sum.FeeLines[1].RemainingCents)
	}
}

// Skenario 5: mode full-payment — payment langsung ke pokok, cicilan tidak double count.
func TestReconcile_FullPaymentMode(t *testing.T) {
	enr, schoolID := buildEnrollment()

	principal := newFee(schoolID, "Fees", 90000)
	t1 := newFee(schoolID, "Fees - Termin 1", 30000)
	t1.FeeScheduleParentFeeID = &principal.FeeScheduleID
	t2 := newFee(schoolID, "Fees - Termin 2", 60000)
	t2.FeeScheduleParentFeeID = &principal.FeeScheduleID

	// payment ke pokok MEMAKSA mode full-payment; payment nyasar ke cicilan
	// tidak boleh menambah totalPaid pokok itu lagi (mode exclusivity)
	sum := Reconcile(ReconcileInput{
		Enrollment: &enr,
		Fees:       []feeModel.FeeScheduleModel{principal, t1, t2},
		Payments: []paymentModel.PaymentModel{
			newPayment(enr.StudentID, principal.FeeScheduleID, 90000),
			newPayment(enr.StudentID, t1.FeeScheduleID, 30000),
		},
		Now: testNow,
	})

	if len(sum.FeeLines) != 1 {
		t.Fatalf("fee lines = %d, want 1 (pokok saja)", len(sum.FeeLines))
	}
	line := sum.FeeLines[0]
	if line.FeeScheduleID != principal.FeeScheduleID {
		t.Fatalf("baris harus pokok")
	}
	if line.Status != FeeStatusPaid || line.RemainingCents != 0 {
		t.Errorf("pokok = %s/%d, want PAID/0", line.Status, line.RemainingCents)
	}
	if sum.TotalPaidCents != 90000 {
		t.Errorf("totalPaid = %d, want 90000 (payment cicilan tidak ikut)", sum.TotalPaidCents)
	}
	if sum.BalanceCents != 0 {
		t.Errorf("balance = %d, want 0", sum.BalanceCents)
	}
}

// Balance boleh negatif (lebih bayar) — dilaporkan apa adanya.
func TestReconcile_OverpaymentBalanceUnclamped(t *testing.T) {
	enr, schoolID := buildEnrollment()
	fee := newFee(schoolID, "Tuition", 100000)

	sum := Reconcile(ReconcileInput{
		Enrollment: &enr,
		Fees:       []feeModel.FeeScheduleModel{fee},
		Payments:   []paymentModel.PaymentModel{newPayment(enr.StudentID, fee.FeeScheduleID, 150000)},
		Now:        testNow,
	})
	if sum.BalanceCents != -50000 {
		t.Errorf("balance = %d, want -50000 (tanpa clamp)", sum.BalanceCents)
	}
	if sum.FeeLines[0].RemainingCents != 0 {
		t.Errorf("remaining per fee tetap di-clamp ke 0, got %d", sum.FeeLines[0].RemainingCents)
	}
}

// Idempoten: dataset sama → output sama.
func TestReconcile_Idempotent(t *testing.T) {
	enr, schoolID := buildEnrollment()
	principal := newFee(schoolID, "Fees", 90000)
	t1 := newFee(schoolID, "Fees - Termin 1", 30000)
	t1.FeeScheduleParentFeeID = &principal.FeeScheduleID

	in := ReconcileInput{
		Enrollment: &enr,
		Fees:       []feeModel.FeeScheduleModel{principal, t1},
		Payments:   []paymentModel.PaymentModel{newPayment(enr.StudentID, t1.FeeScheduleID, 10000)},
		Now:        testNow,
	}

	first := Reconcile(in)
	second := Reconcile(in)

	if first.TotalDueCents != second.TotalDueCents ||
		first.TotalPaidCents != second.TotalPaidCents ||
		first.BalanceCents != second.BalanceCents ||
		len(first.FeeLines) != len(second.FeeLines) {
		t.Errorf("hasil tidak idempoten:\n1: %+v\n2: %+v", first, second)
	}
	for i := range first.FeeLines {
		a, b := first.FeeLines[i], second.FeeLines[i]
		if a.FeeScheduleID != b.FeeScheduleID || a.Status != b.Status ||
			a.PaidCents != b.PaidCents || a.RemainingCents != b.RemainingCents {
			t.Errorf("baris %d beda: %+v vs %+v", i, a, b)
		}
	}
}

// Anomali di-skip dari agregasi tapi tetap dilaporkan.
func TestReconcile_SkipsAnomalies(t *testing.T) {
	enr, schoolID := buildEnrollment()
	missingParent := uuid.New()

	tuition := newFee(schoolID, "Tuition", 100000)
	orphan := newFee(schoolID, "Seragam - Termin 1", 10000)
	orphan.FeeScheduleParentFeeID = &missingParent

	sum := Reconcile(ReconcileInput{
		Enrollment: &enr,
		Fees:       []feeModel.FeeScheduleModel{tuition, orphan},
		Payments:   []paymentModel.PaymentModel{newPayment(enr.StudentID, orphan.FeeScheduleID, 10000)},
		Now:        testNow,
	})

	if sum.TotalDueCents != 100000 {
		t.Errorf("totalDue = %d, want 100000 (orphan tidak ikut)", sum.TotalDueCents)
	}
	if sum.TotalPaidCents != 0 {
		t.Errorf("totalPaid = %d, want 0 (payment ke orphan di-skip)", sum.TotalPaidCents)
	}
	if len(sum.Anomalies) != 1 || sum.Anomalies[0].Kind != "orphan_installment" {
		t.Errorf("anomalies = %+v, want satu orphan_installment", sum.Anomalies)
	}
}

// AggregateForPrincipalAndInstallments menjumlah pokok + seluruh cicilan.
func TestAggregateForPrincipalAndInstallments(t *testing.T) {
	studentID := uuid.New()
	schoolID := uuid.New()
	principal := newFee(schoolID, "Fees", 90000)
	t1 := newFee(schoolID, "Fees - Termin 1", 30000)
	t1.FeeScheduleParentFeeID = &principal.FeeScheduleID

	total := AggregateForPrincipalAndInstallments(
		principal,
		[]feeModel.FeeScheduleModel{t1},
		[]paymentModel.PaymentModel{
			newPayment(studentID, principal.FeeScheduleID, 20000),
			newPayment(studentID, t1.FeeScheduleID, 15000),
			newPayment(uuid.New(), t1.FeeScheduleID, 99999), // student lain
		},
		studentID,
	)
	if total != 35000 {
		t.Errorf("total = %d, want 35000", total)
	}
}
