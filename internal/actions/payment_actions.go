package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// paymentStatusText maps wire statuses to what the user reads. Unknown
// statuses fall back to their uppercased raw form.
var paymentStatusText = map[string]string{
	models.PaymentStatusPending:  "Menunggu Pembayaran",
	models.PaymentStatusSuccess:  "Pembayaran Berhasil",
	models.PaymentStatusFailed:   "Pembayaran Gagal",
	models.PaymentStatusExpired:  "Pembayaran Kedaluwarsa",
	models.PaymentStatusCanceled: "Pembayaran Dibatalkan",
}

// CheckPaymentStatus shows the payment state of one order.
type CheckPaymentStatus struct {
	orders OrderStore
	log    *zap.SugaredLogger
}

func (a *CheckPaymentStatus) Name() string { return "action_check_payment_status" }

func (a *CheckPaymentStatus) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	orderID, ok := t.SlotOrEntityInt64("order_id")
	if !ok {
		d.Utter("utter_ask_order_id")
		return nil
	}

	status, err := a.orders.GetPaymentStatus(ctx, orderID)
	if errors.Is(err, database.ErrNotFound) {
		d.Say(fmt.Sprintf("Maaf, saya tidak menemukan informasi pembayaran untuk pesanan #%d. Mohon periksa kembali nomor pesanan Anda.", orderID))
		return nil
	}
	if err != nil {
		a.log.Errorw("payment status lookup failed", "order_id", orderID, "error", err)
		d.Say("Maaf, terjadi kesalahan saat mengecek status pembayaran. Silakan coba lagi nanti.")
		return nil
	}

	payment, err := a.orders.GetPaymentByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		a.log.Errorw("payment lookup failed", "order_id", orderID, "error", err)
		d.Say("Maaf, terjadi kesalahan saat mengecek status pembayaran. Silakan coba lagi nanti.")
		return nil
	}

	statusText, known := paymentStatusText[status.Status]
	if !known {
		statusText = strings.ToUpper(status.Status)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💳 *Status Pembayaran Pesanan #%d*\n\n", orderID)
	fmt.Fprintf(&b, "Status: %s\n", statusText)

	if payment != nil {
		if payment.PaymentType != nil {
			fmt.Fprintf(&b, "Metode: %s\n", *payment.PaymentType)
		}
		fmt.Fprintf(&b, "Jumlah: %s\n", rupiah(payment.Amount))
		if payment.VANumber != nil {
			fmt.Fprintf(&b, "Nomor VA: %s\n", *payment.VANumber)
		}
		if payment.ExpiryTime != nil && status.Status == models.PaymentStatusPending {
			fmt.Fprintf(&b, "Batas Waktu: %s\n", formatDateTime(*payment.ExpiryTime))
		}
	}
	d.Say(b.String())

	return []Event{
		SlotSet("order_id", orderID),
		Followup("utter_ask_more_help"),
	}
}
