package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderSucceeded OrderStatus = "SUCCEEDED"
	OrderFailed    OrderStatus = "FAILED"
)

// Order is the single persisted entity: one row per checkout attempt,
// created PENDING and driven to a terminal status by the gateway notification.
type Order struct {
	OrderID        string      `json:"orderId"`
	Amount         int         `json:"amount"`
	Currency       string      `json:"currency"`
	Status         OrderStatus `json:"status"`
	IdempotencyKey string      `json:"-"`
	ProviderTx     *string     `json:"provider_tx"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Terminal reports whether the status can no longer change under normal
// operation. Repeated notifications for a terminal order are still accepted
// idempotently.
func (s OrderStatus) Terminal() bool {
	return s == OrderSucceeded || s == OrderFailed
}
