package payment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"checkout-mini-demo/internal/domain"
)

// successCodes are the outcome markers the gateway reports for a completed
// payment. Anything else maps to FAILED.
var successCodes = map[string]struct{}{
	"AUTHORISED": {},
	"CAPTURED":   {},
	"00":         {},
}

// Outcome maps a notification status code to the terminal order status.
func Outcome(code string) domain.OrderStatus {
	if _, ok := successCodes[code]; ok {
		return domain.OrderSucceeded
	}
	return domain.OrderFailed
}

// ParseNotification normalizes an inbound gateway callback. The gateway posts
// form-encoded vads_* fields; a JSON body with the legacy field names is
// accepted as well. The gateway's own names always win over the legacy
// synonyms.
func ParseNotification(r *http.Request) (domain.Notification, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var body struct {
			TransactionID string `json:"transactionId"`
			Code          string `json:"code"`
			OrderID       string `json:"orderId"`
			Amount        int    `json:"amount"`
			Currency      string `json:"currency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return domain.Notification{}, fmt.Errorf("decode notification body: %w", err)
		}
		return domain.Notification{
			OrderID:       body.OrderID,
			Code:          body.Code,
			TransactionID: body.TransactionID,
			Amount:        body.Amount,
			Currency:      body.Currency,
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return domain.Notification{}, fmt.Errorf("parse notification form: %w", err)
	}
	return FromValues(r.PostForm), nil
}

// FromValues builds a Notification out of form fields, preferring the
// gateway-prefixed names and falling back to the legacy ones.
func FromValues(v url.Values) domain.Notification {
	pick := func(primary, fallback string) string {
		if s := v.Get(primary); s != "" {
			return s
		}
		return v.Get(fallback)
	}

	amount, _ := strconv.Atoi(pick("vads_amount", "amount"))

	return domain.Notification{
		OrderID:       pick("vads_order_id", "orderId"),
		Code:          pick("vads_trans_status", "status"),
		TransactionID: pick("vads_trans_id", "transactionId"),
		Amount:        amount,
		Currency:      pick("vads_currency", "currency"),
	}
}
