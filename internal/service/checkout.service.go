package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"checkout-mini-demo/internal/apperr"
	"checkout-mini-demo/internal/config"
	"checkout-mini-demo/internal/domain"
	"checkout-mini-demo/internal/infrastructure/payment"
	"checkout-mini-demo/internal/repo"
)

type CheckoutService interface {
	// CreateSession persists a PENDING order for the demo product and returns
	// the signed field set the browser must POST to the gateway.
	CreateSession(ctx context.Context, productID string) (*domain.Session, error)

	// HandleNotification translates a gateway callback into an order state
	// transition. Unknown or unparseable order references are logged and
	// swallowed so the gateway's retry channel is never starved.
	HandleNotification(ctx context.Context, n domain.Notification) error

	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// ForceStatus overrides an order's status directly. Non-production
	// tooling only.
	ForceStatus(ctx context.Context, orderID string, ok bool) (domain.OrderStatus, error)

	Product() domain.Product
}

type checkoutService struct {
	orderRepo repo.OrderRepo
	signer    *payment.Signer
	log       *slog.Logger

	merchant   string
	ctxMode    string
	paymentURL string
	returnURL  string
	product    domain.Product
}

func NewCheckoutService(orderRepo repo.OrderRepo, signer *payment.Signer, cfg config.Config, log *slog.Logger) CheckoutService {
	return &checkoutService{
		orderRepo:  orderRepo,
		signer:     signer,
		log:        log,
		merchant:   cfg.Merchant,
		ctxMode:    cfg.CtxMode,
		paymentURL: cfg.PaymentURL,
		returnURL:  cfg.ReturnURL,
		product:    domain.DemoProduct,
	}
}

func (s *checkoutService) Product() domain.Product {
	return s.product
}

// CreateSession ignores the product reference: this is a single-product demo
// and any value is accepted.
func (s *checkoutService) CreateSession(ctx context.Context, _ string) (*domain.Session, error) {
	now := time.Now().UTC()
	order := &domain.Order{
		OrderID:        NewOrderID(),
		Amount:         s.product.Price,
		Currency:       s.product.Currency,
		Status:         domain.OrderPending,
		IdempotencyKey: newIdempotencyKey(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	fields := payment.VadsFields(payment.SessionParams{
		SiteID:    s.merchant,
		CtxMode:   s.ctxMode,
		TransID:   payment.TransID(),
		TransDate: payment.TransDate(now),
		Amount:    order.Amount,
		Currency:  payment.CurrencyNumeric(order.Currency),
		OrderID:   order.OrderID,
		ReturnURL: s.returnURL,
	})

	signature, err := s.signer.SignVads(fields)
	if err != nil {
		return nil, err
	}
	fields["signature"] = signature

	s.log.Info("payment session created", "order_id", order.OrderID, "amount", order.Amount, "currency", order.Currency)

	return &domain.Session{
		OrderID:    order.OrderID,
		PaymentURL: s.paymentURL,
		Fields:     fields,
	}, nil
}

func (s *checkoutService) HandleNotification(ctx context.Context, n domain.Notification) error {
	if n.OrderID == "" {
		s.log.Warn("notification carried no order id, acknowledging without update")
		return nil
	}

	status := payment.Outcome(n.Code)

	var providerTx *string
	if n.TransactionID != "" {
		providerTx = &n.TransactionID
	}

	err := s.orderRepo.UpdateStatus(ctx, n.OrderID, status, providerTx)
	if errors.Is(err, apperr.ErrNotFound) {
		// Reject-and-log: a forged callback must not create a shadow order.
		s.log.Warn("notification for unknown order", "order_id", n.OrderID, "code", n.Code)
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply notification: %w", err)
	}

	s.log.Info("order status updated", "order_id", n.OrderID, "status", status, "provider_tx", n.TransactionID)
	return nil
}

func (s *checkoutService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *checkoutService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

func (s *checkoutService) ForceStatus(ctx context.Context, orderID string, ok bool) (domain.OrderStatus, error) {
	status := domain.OrderFailed
	if ok {
		status = domain.OrderSucceeded
	}

	providerTx := "SIMULATED"
	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, &providerTx); err != nil {
		return "", err
	}

	s.log.Info("order status forced", "order_id", orderID, "status", status)
	return status, nil
}

// NewOrderID generates a fresh order identifier: a fixed prefix plus twelve
// uppercased hex characters of a random uuid.
func NewOrderID() string {
	u := uuid.New()
	return "ORD-" + strings.ToUpper(fmt.Sprintf("%x", u[:6]))
}

func newIdempotencyKey() string {
	k := uuid.New()
	return fmt.Sprintf("%x", k[:])
}
