package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/database"
)

// CheckOrderStatus shows one order in full: buyer, totals, payment info and
// the ordered items.
type CheckOrderStatus struct {
	orders OrderStore
	log    *zap.SugaredLogger
}

func (a *CheckOrderStatus) Name() string { return "action_check_order_status" }

func (a *CheckOrderStatus) Run(ctx context.Context, d *Dispatcher, t *Tracker) []Event {
	orderID, ok := t.SlotOrEntityInt64("order_id")
	if !ok {
		d.Utter("utter_ask_order_id")
		return nil
	}

	order, err := a.orders.GetOrderByID(ctx, orderID)
	if errors.Is(err, database.ErrNotFound) {
		d.Say(fmt.Sprintf("Maaf, saya tidak menemukan pesanan dengan nomor %d. Mohon periksa kembali nomor pesanan Anda.", orderID))
		return nil
	}
	if err != nil {
		a.log.Errorw("order lookup failed", "order_id", orderID, "error", err)
		d.Say("Maaf, terjadi kesalahan saat mengecek status pesanan. Silakan coba lagi nanti.")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Informasi Pesanan #%d*\n\n", orderID)
	fmt.Fprintf(&b, "👤 Pemesan: %s (@%s)\n", order.FullName, order.Username)
	fmt.Fprintf(&b, "💰 Total: %s\n", rupiah(order.TotalAmount))
	fmt.Fprintf(&b, "📅 Tanggal: %s\n", formatDateTime(order.CreatedAt))
	fmt.Fprintf(&b, "🚩 Status: %s\n\n", strings.ToUpper(order.Status))

	if pay := order.Payment; pay != nil {
		b.WriteString("*Informasi Pembayaran*:\n")
		method := "Belum dipilih"
		if pay.PaymentType != nil {
			method = *pay.PaymentType
		}
		fmt.Fprintf(&b, "💳 Metode: %s\n", method)
		if pay.VANumber != nil {
			fmt.Fprintf(&b, "🔢 VA Number: %s\n", *pay.VANumber)
		}
		fmt.Fprintf(&b, "🚩 Status Pembayaran: %s\n", strings.ToUpper(pay.Status))
		if pay.ExpiryTime != nil {
			fmt.Fprintf(&b, "⏰ Batas Waktu: %s\n\n", formatDateTime(*pay.ExpiryTime))
		}
	}

	if len(order.Items) > 0 {
		b.WriteString("*Item Pesanan*:\n")
		for i, item := range order.Items {
			fmt.Fprintf(&b, "%d. %s (%d x %s)\n", i+1, item.ProductName, item.Quantity, rupiah(item.Price))
		}
	}
	d.Say(b.String())

	return []Event{
		SlotSet("order_id", orderID),
		Followup("utter_ask_more_help"),
	}
}
