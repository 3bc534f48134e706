package payment

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// SessionParams carries the per-order values for a hosted-payment field set.
type SessionParams struct {
	SiteID    string
	CtxMode   string
	TransID   string
	TransDate string
	Amount    int
	Currency  int
	OrderID   string
	ReturnURL string
}

// VadsFields assembles the full field set the browser must POST to the
// gateway. Protocol constants (V2, PAYMENT, INTERACTIVE, SINGLE) are fixed by
// the hosted-payment-page integration.
func VadsFields(p SessionParams) map[string]string {
	return map[string]string{
		"vads_site_id":        p.SiteID,
		"vads_ctx_mode":       p.CtxMode,
		"vads_version":        "V2",
		"vads_page_action":    "PAYMENT",
		"vads_action_mode":    "INTERACTIVE",
		"vads_payment_config": "SINGLE",
		"vads_trans_id":       p.TransID,
		"vads_trans_date":     p.TransDate,
		"vads_amount":         strconv.Itoa(p.Amount),
		"vads_currency":       strconv.Itoa(p.Currency),
		"vads_order_id":       p.OrderID,
		"vads_url_return":     p.ReturnURL,
	}
}

// TransID returns a fresh six-digit numeric transaction id. The gateway
// recommends uniqueness per day; collisions are probabilistically tolerated
// for a demo.
func TransID() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}

// TransDate formats a transaction timestamp the way the gateway expects:
// compact UTC yyyymmddHHMMSS.
func TransDate(t time.Time) string {
	return t.UTC().Format("20060102150405")
}

// CurrencyNumeric maps an ISO 4217 alpha code to the numeric code the vads
// fields carry. Unknown codes map to 0, which the gateway rejects loudly.
func CurrencyNumeric(code string) int {
	switch code {
	case "PEN":
		return 604
	case "USD":
		return 840
	case "EUR":
		return 978
	default:
		return 0
	}
}
