package payment

import (
	"crypto/hmac"

	"checkout-mini-demo/internal/apperr"
	"checkout-mini-demo/internal/config"
	"checkout-mini-demo/internal/domain"
)

// SignatureScheme decides whether an inbound notification is trusted. The
// scheme is selected by configuration: the hosted-payment-page integration
// performs no inbound validation (transport security plus field matching),
// while the strict scheme requires a matching X-Signature header.
type SignatureScheme interface {
	Verify(n domain.Notification, provided string) error
}

// LenientScheme accepts every notification.
type LenientScheme struct{}

func (LenientScheme) Verify(domain.Notification, string) error { return nil }

// StrictScheme recomputes the canonical hex signature and compares it in
// constant time. A missing or tampered header rejects the notification before
// any order is touched.
type StrictScheme struct {
	Signer   *Signer
	Merchant string
}

func (s StrictScheme) Verify(n domain.Notification, provided string) error {
	expected, err := s.Signer.SignCanonical(s.Merchant, n.OrderID, n.Amount, n.Currency)
	if err != nil {
		return err
	}
	if provided == "" || !hmac.Equal([]byte(provided), []byte(expected)) {
		return apperr.ErrInvalidSignature
	}
	return nil
}

// SchemeFor returns the scheme selected by the webhook signature mode.
func SchemeFor(mode string, signer *Signer, merchant string) SignatureScheme {
	if mode == config.WebhookStrict {
		return StrictScheme{Signer: signer, Merchant: merchant}
	}
	return LenientScheme{}
}
