package controller

import (
	"testing"
	"time"

	"github.com/google/uuid"

	studentModel "sekolahku_backend/internals/features/school/students/model"
)

func TestOwnsStudentProfile(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	cases := []struct {
		name    string
		profile studentModel.StudentProfileModel
		caller  uuid.UUID
		want    bool
	}{
		{
			name:    "student lihat summary sendiri",
			profile: studentModel.StudentProfileModel{StudentUserID: &userID},
			caller:  userID,
			want:    true,
		},
		{
			name:    "user lain ditolak",
			profile: studentModel.StudentProfileModel{StudentUserID: &userID},
			caller:  otherID,
			want:    false,
		},
		{
			name:    "profil tanpa akun user ditolak",
			profile: studentModel.StudentProfileModel{},
			caller:  userID,
			want:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ownsStudentProfile(tc.profile, tc.caller); got != tc.want {
				t.Fatalf("ownsStudentProfile = %v, want %v", got, tc.want)
			}
		})
	}
}

// paid_to inklusif: payment di hari itu ikut, hari berikutnya tidak.
func TestPaidDateUpperBound(t *testing.T) {
	paidTo := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	bound := paidDateUpperBound(paidTo)

	sameDay := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)

	if !sameDay.Before(bound) {
		t.Errorf("payment jam %s harus masuk batas %s", sameDay, bound)
	}
	if nextDay.Before(bound) {
		t.Errorf("payment jam %s tidak boleh masuk batas %s", nextDay, bound)
	}
}
