package service

import (
	"errors"
	"os"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"sekolahku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans dipanggil sekali saat bootstrap app.
// MIDTRANS_PRODUCTION=true untuk production, selain itu sandbox.
func InitMidtrans(serverKey string) {
	env := midtrans.Sandbox
	if strings.EqualFold(os.Getenv("MIDTRANS_PRODUCTION"), "true") {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

/* =========================================================
   Input helper untuk data customer (wali/orang tua)
========================================================= */

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

/* =========================================================
   Generate Snap Token
========================================================= */

func GenerateSnapToken(p model.PaymentModel, itemName string, cust CustomerInput) (string, string, error) {
	if p.PaymentAmountCents <= 0 {
		return "", "", errors.New("invalid payment_amount_cents")
	}
	if p.PaymentOrderID == nil || *p.PaymentOrderID == "" {
		return "", "", errors.New("payment_order_id is required")
	}

	// midtrans pakai rupiah utuh, internal pakai sen
	gross := p.PaymentAmountCents / 100

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *p.PaymentOrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			LName: cust.LastName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       *p.PaymentOrderID,
				Price:    gross,
				Qty:      1,
				Name:     truncate(defaultString(itemName, "School Fee"), 50),
				Category: "SPP",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

/* =========================================================
   Notification mapping
========================================================= */

// MapTransactionStatus memetakan status notifikasi midtrans ke status internal.
// Dokumen midtrans: capture/settlement = sukses, pending = menunggu,
// deny/cancel = gagal, expire = kedaluwarsa.
func MapTransactionStatus(transactionStatus, fraudStatus string) model.PaymentGatewayStatus {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return model.PaymentGatewayStatusSettled
		}
		return model.PaymentGatewayStatusPending
	case "settlement":
		return model.PaymentGatewayStatusSettled
	case "pending":
		return model.PaymentGatewayStatusPending
	case "deny", "cancel":
		return model.PaymentGatewayStatusFailed
	case "expire":
		return model.PaymentGatewayStatusExpired
	default:
		return model.PaymentGatewayStatusPending
	}
}

/* =========================================================
   Utils
========================================================= */

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

func defaultString(s string, def string) string {
	if s == "" {
		return def
	}
	return s
}
