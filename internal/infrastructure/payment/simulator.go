package payment

import (
	"net/url"
	"strconv"
	"sync"
)

// Simulator stands in for the hosted gateway in dev mode and in tests. It
// fabricates the form fields the gateway would post back for an order. The
// transaction id issued for an order is remembered, so a retried notification
// carries the same provider reference the first one did.
type Simulator struct {
	mu     sync.RWMutex
	issued map[string]string
}

func NewSimulator() *Simulator {
	return &Simulator{issued: make(map[string]string)}
}

// Notification builds the gateway callback form for an order. ok selects an
// authorised outcome, otherwise a refusal.
func (s *Simulator) Notification(orderID string, ok bool, amount int, currency string) url.Values {
	s.mu.RLock()
	transID, exists := s.issued[orderID]
	s.mu.RUnlock()

	if !exists {
		transID = TransID()
		s.mu.Lock()
		if prev, raced := s.issued[orderID]; raced {
			transID = prev
		} else {
			s.issued[orderID] = transID
		}
		s.mu.Unlock()
	}

	status := "AUTHORISED"
	if !ok {
		status = "REFUSED"
	}

	return url.Values{
		"vads_order_id":     {orderID},
		"vads_trans_status": {status},
		"vads_trans_id":     {transID},
		"vads_amount":       {strconv.Itoa(amount)},
		"vads_currency":     {currency},
	}
}
