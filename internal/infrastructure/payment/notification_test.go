package payment

import (
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-mini-demo/internal/domain"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		code string
		want domain.OrderStatus
	}{
		{code: "AUTHORISED", want: domain.OrderSucceeded},
		{code: "CAPTURED", want: domain.OrderSucceeded},
		{code: "00", want: domain.OrderSucceeded},
		{code: "REFUSED", want: domain.OrderFailed},
		{code: "05", want: domain.OrderFailed},
		{code: "", want: domain.OrderFailed},
	}

	for _, tt := range tests {
		t.Run("code_"+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.code))
		})
	}
}

func TestFromValuesPrefersGatewayFieldNames(t *testing.T) {
	v := url.Values{
		"vads_order_id":     {"ORD-PRIMARY"},
		"orderId":           {"ORD-LEGACY"},
		"vads_trans_status": {"AUTHORISED"},
		"status":            {"REFUSED"},
		"vads_trans_id":     {"123456"},
		"transactionId":     {"legacy-tx"},
		"vads_amount":       {"1500"},
		"vads_currency":     {"PEN"},
	}

	n := FromValues(v)

	assert.Equal(t, "ORD-PRIMARY", n.OrderID)
	assert.Equal(t, "AUTHORISED", n.Code)
	assert.Equal(t, "123456", n.TransactionID)
	assert.Equal(t, 1500, n.Amount)
	assert.Equal(t, "PEN", n.Currency)
}

func TestFromValuesFallsBackToLegacyNames(t *testing.T) {
	v := url.Values{
		"orderId":       {"ORD-LEGACY"},
		"status":        {"REFUSED"},
		"transactionId": {"legacy-tx"},
		"amount":        {"1500"},
		"currency":      {"PEN"},
	}

	n := FromValues(v)

	assert.Equal(t, "ORD-LEGACY", n.OrderID)
	assert.Equal(t, "REFUSED", n.Code)
	assert.Equal(t, "legacy-tx", n.TransactionID)
	assert.Equal(t, 1500, n.Amount)
}

func TestParseNotificationForm(t *testing.T) {
	form := url.Values{
		"vads_order_id":     {"ORD-FORM"},
		"vads_trans_status": {"AUTHORISED"},
		"vads_trans_id":     {"654321"},
	}
	req := httptest.NewRequest("POST", "/api/payments/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	n, err := ParseNotification(req)
	require.NoError(t, err)

	assert.Equal(t, "ORD-FORM", n.OrderID)
	assert.Equal(t, "AUTHORISED", n.Code)
	assert.Equal(t, "654321", n.TransactionID)
}

func TestParseNotificationJSON(t *testing.T) {
	body := `{"transactionId":"tx-1","code":"00","orderId":"ORD-JSON","amount":1500,"currency":"PEN"}`
	req := httptest.NewRequest("POST", "/api/payments/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	n, err := ParseNotification(req)
	require.NoError(t, err)

	assert.Equal(t, "ORD-JSON", n.OrderID)
	assert.Equal(t, "00", n.Code)
	assert.Equal(t, "tx-1", n.TransactionID)
	assert.Equal(t, 1500, n.Amount)
	assert.Equal(t, "PEN", n.Currency)
}

func TestParseNotificationBadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/payments/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	_, err := ParseNotification(req)
	assert.Error(t, err)
}

func TestTransID(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, TransID())
	}
}

func TestTransDate(t *testing.T) {
	ts := time.Date(2026, 8, 31, 15, 4, 5, 0, time.FixedZone("PET", -5*3600))
	assert.Equal(t, "20260831200405", TransDate(ts))
}

func TestCurrencyNumeric(t *testing.T) {
	assert.Equal(t, 604, CurrencyNumeric("PEN"))
	assert.Equal(t, 840, CurrencyNumeric("USD"))
	assert.Equal(t, 978, CurrencyNumeric("EUR"))
	assert.Equal(t, 0, CurrencyNumeric("XXX"))
}

func TestSimulatorReissuesSameTransactionID(t *testing.T) {
	sim := NewSimulator()

	first := sim.Notification("ORD-1", true, 1500, "PEN")
	second := sim.Notification("ORD-1", true, 1500, "PEN")

	assert.Equal(t, "AUTHORISED", first.Get("vads_trans_status"))
	assert.Equal(t, first.Get("vads_trans_id"), second.Get("vads_trans_id"))

	refused := sim.Notification("ORD-2", false, 1500, "PEN")
	assert.Equal(t, "REFUSED", refused.Get("vads_trans_status"))
	assert.Equal(t, "ORD-2", refused.Get("vads_order_id"))
}
