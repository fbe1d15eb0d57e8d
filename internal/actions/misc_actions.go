package actions

import (
	"context"
	"fmt"
	"strings"
)

// AcknowledgeAffirmation responds to a "ya" and offers the help menu.
type AcknowledgeAffirmation struct{}

func (a *AcknowledgeAffirmation) Name() string { return "action_acknowledge_affirmation" }

func (a *AcknowledgeAffirmation) Run(_ context.Context, d *Dispatcher, _ *Tracker) []Event {
	d.Utter("utter_acknowledge_affirmation")
	return []Event{Followup("utter_help")}
}

// AcknowledgeDenial responds to a "tidak" and wraps up.
type AcknowledgeDenial struct{}

func (a *AcknowledgeDenial) Name() string { return "action_acknowledge_denial" }

func (a *AcknowledgeDenial) Run(_ context.Context, d *Dispatcher, _ *Tracker) []Event {
	d.Utter("utter_acknowledge_denial")
	return []Event{Followup("utter_goodbye")}
}

// RedirectOrderPage sends multi-item or customized orders to the web
// storefront, echoing back what the user asked for when it was parsed.
type RedirectOrderPage struct{}

func (a *RedirectOrderPage) Name() string { return "action_redirect_order_page" }

func (a *RedirectOrderPage) Run(_ context.Context, d *Dispatcher, t *Tracker) []Event {
	product, _ := t.Entity("product")
	quantity, _ := t.Entity("quantity")
	spicyLevel, _ := t.Entity("spicy_level")

	var b strings.Builder
	b.WriteString("Untuk melakukan pemesanan kompleks dengan beberapa menu, silakan kunjungi halaman pemesanan di website atau aplikasi kami.")

	if product != "" && quantity != "" {
		fmt.Fprintf(&b, "\n\nAnda ingin memesan %s porsi %s", quantity, product)
		if spicyLevel != "" {
			fmt.Fprintf(&b, " dengan level kepedasan %s", spicyLevel)
		}
		b.WriteString(". Anda dapat menyelesaikan pesanan ini melalui website atau aplikasi kami.")
	}

	d.Say(b.String())
	return []Event{Followup("utter_ask_more_help")}
}
