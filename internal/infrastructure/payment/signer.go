package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"checkout-mini-demo/internal/apperr"
)

// vadsSignatureOrder is the exact field sequence the gateway signs over.
// It is a hard external contract: any deviation produces a signature the
// gateway rejects.
var vadsSignatureOrder = []string{
	"vads_action_mode",
	"vads_amount",
	"vads_ctx_mode",
	"vads_currency",
	"vads_order_id",
	"vads_page_action",
	"vads_payment_config",
	"vads_site_id",
	"vads_trans_date",
	"vads_trans_id",
	"vads_url_return",
	"vads_version",
}

// Signer computes the two HMAC-SHA256 schemes the gateway integration uses:
// the hosted-payment-page signature (base64, over the ordered vads values)
// and the canonical notification signature (hex, over merchant|order|amount|currency).
type Signer struct {
	secret string
	debug  bool
	log    *slog.Logger
}

func NewSigner(secret string, debug bool, log *slog.Logger) *Signer {
	return &Signer{secret: secret, debug: debug, log: log}
}

// SignVads signs the hosted-payment field set: the values of the twelve vads
// fields joined with '+', then '+' and the certificate, HMAC-SHA256 keyed by
// the certificate, base64-encoded.
func (s *Signer) SignVads(fields map[string]string) (string, error) {
	if s.secret == "" {
		return "", fmt.Errorf("vads signing needs IZIPAY_HMAC_KEY: %w", apperr.ErrMissingConfig)
	}

	data := vadsJoin(fields)
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(data + "+" + s.secret))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if s.debug {
		// The certificate suffix is deliberately left out of the log line.
		s.log.Info("vads signature computed", "to_sign", data, "signature", sig)
	}
	return sig, nil
}

// SignCanonical signs the strict notification contract: merchant code, order
// id, amount and currency joined with '|', HMAC-SHA256, hex-encoded.
func (s *Signer) SignCanonical(merchant, orderID string, amount int, currency string) (string, error) {
	if s.secret == "" {
		return "", fmt.Errorf("notification signing needs IZIPAY_HMAC_KEY: %w", apperr.ErrMissingConfig)
	}

	canonical := strings.Join([]string{merchant, orderID, strconv.Itoa(amount), currency}, "|")
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func vadsJoin(fields map[string]string) string {
	values := make([]string, 0, len(vadsSignatureOrder))
	for _, name := range vadsSignatureOrder {
		values = append(values, fields[name])
	}
	return strings.Join(values, "+")
}
