package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestFeeScheduleKindHelpers(t *testing.T) {
	parentID := uuid.New()

	cases := []struct {
		name          string
		fee           FeeScheduleModel
		wantPrincipal bool
		wantModern    bool
		wantLegacy    bool
	}{
		{
			name:          "pokok biasa",
			fee:           FeeScheduleModel{FeeScheduleName: "SPP Januari"},
			wantPrincipal: true,
		},
		{
			name:          "cicilan modern",
			fee:           FeeScheduleModel{FeeScheduleName: "Cicilan 1", FeeScheduleParentFeeID: &parentID},
			wantModern:    true,
		},
		{
			name:       "cicilan warisan",
			fee:        FeeScheduleModel{FeeScheduleName: "Uang Gedung - Cicilan 1"},
			wantLegacy: true,
		},
		{
			// nama berpola warisan TAPI punya link eksplisit → link menang
			name:       "link eksplisit menang atas pola nama",
			fee:        FeeScheduleModel{FeeScheduleName: "Uang Gedung - Cicilan 1", FeeScheduleParentFeeID: &parentID},
			wantModern: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fee.IsPrincipal(); got != tc.wantPrincipal {
				t.Errorf("IsPrincipal = %v, want %v", got, tc.wantPrincipal)
			}
			if got := tc.fee.IsModernInstallment(); got != tc.wantModern {
				t.Errorf("IsModernInstallment = %v, want %v", got, tc.wantModern)
			}
			if got := tc.fee.IsLegacyInstallment(); got != tc.wantLegacy {
				t.Errorf("IsLegacyInstallment = %v, want %v", got, tc.wantLegacy)
			}
		})
	}
}

func TestLegacyPrincipalName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Uang Gedung - Cicilan 1", "Uang Gedung"},
		{"Uang Gedung - Tahap - 2", "Uang Gedung"}, // prefix sebelum separator pertama
		{"SPP Januari", "SPP Januari"},
	}
	for _, tc := range cases {
		m := FeeScheduleModel{FeeScheduleName: tc.in}
		if got := m.LegacyPrincipalName(); got != tc.want {
			t.Errorf("LegacyPrincipalName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
