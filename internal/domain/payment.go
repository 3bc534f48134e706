package domain

// Product is the static single-product demo catalog entry. Price is in minor
// currency units (1500 = S/ 15.00).
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Currency string `json:"currency"`
}

// DemoProduct is the only product this backend sells.
var DemoProduct = Product{
	ID:       "rent-001",
	Name:     "Reserva de alquiler (demo)",
	Price:    1500,
	Currency: "PEN",
}

// Session is what the caller needs to hand the browser: the gateway submission
// URL plus the full signed field set to POST there.
type Session struct {
	OrderID    string            `json:"orderId"`
	PaymentURL string            `json:"payment_url"`
	Fields     map[string]string `json:"vads"`
}

// Notification is a gateway callback normalized out of either naming
// convention (vads_* fields or the legacy orderId/status/transactionId set).
type Notification struct {
	OrderID       string
	Code          string
	TransactionID string
	Amount        int
	Currency      string
}
