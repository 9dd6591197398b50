package service

import (
	"testing"

	"sekolahku_backend/internals/features/finance/payments/model"
)

func TestMapTransactionStatus(t *testing.T) {
	cases := []struct {
		transaction string
		fraud       string
		want        model.PaymentGatewayStatus
	}{
		{"settlement", "", model.PaymentGatewayStatusSettled},
		{"capture", "accept", model.PaymentGatewayStatusSettled},
		{"capture", "challenge", model.PaymentGatewayStatusPending},
		{"pending", "", model.PaymentGatewayStatusPending},
		{"deny", "", model.PaymentGatewayStatusFailed},
		{"cancel", "", model.PaymentGatewayStatusFailed},
		{"expire", "", model.PaymentGatewayStatusExpired},
		{"refund", "", model.PaymentGatewayStatusPending}, // status asing → tetap pending
	}

	for _, tc := range cases {
		if got := MapTransactionStatus(tc.transaction, tc.fraud); got != tc.want {
			t.Errorf("MapTransactionStatus(%q, %q) = %q, want %q",
				tc.transaction, tc.fraud, got, tc.want)
		}
	}
}
