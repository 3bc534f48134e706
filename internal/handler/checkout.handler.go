package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"checkout-mini-demo/internal/apperr"
	"checkout-mini-demo/internal/database"
	"checkout-mini-demo/internal/domain"
	"checkout-mini-demo/internal/infrastructure/payment"
	"checkout-mini-demo/internal/service"
)

// CreateSessionRequest carries the optional product reference. The demo sells
// a single product, so any value (or no body at all) is accepted.
type CreateSessionRequest struct {
	ProductID string `json:"product_id"`
}

type CheckoutHandler struct {
	svc    service.CheckoutService
	scheme payment.SignatureScheme
	db     database.Service
	log    *slog.Logger
}

func NewCheckoutHandler(svc service.CheckoutService, scheme payment.SignatureScheme, db database.Service, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		svc:    svc,
		scheme: scheme,
		db:     db,
		log:    log,
	}
}

func (h *CheckoutHandler) Health(c *gin.Context) {
	resp := gin.H{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	}
	if h.db != nil {
		resp["db"] = h.db.Health(c.Request.Context())
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) Product(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Product())
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	// An empty or unparseable body is fine: the product reference is ignored.
	_ = c.ShouldBindJSON(&req)

	session, err := h.svc.CreateSession(c.Request.Context(), req.ProductID)
	if err != nil {
		h.log.Error("create session failed", "error", err)
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

// Webhook receives the asynchronous gateway notification. The configured
// signature scheme is consulted before any order is touched; past that point
// the channel always answers with a generic acknowledgment, so a retrying
// gateway is never starved by an unrecognized payload.
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	n, parseErr := payment.ParseNotification(c.Request)

	if err := h.scheme.Verify(n, c.GetHeader("X-Signature")); err != nil {
		h.log.Warn("notification rejected", "order_id", n.OrderID, "kind", apperr.Kind(err))
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": "invalid signature"})
		return
	}

	if parseErr != nil {
		h.log.Warn("malformed notification acknowledged", "error", parseErr)
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := h.svc.HandleNotification(c.Request.Context(), n); err != nil {
		// Still acknowledge: the gateway retries on anything else.
		h.log.Error("notification processing failed", "order_id", n.OrderID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		h.log.Error("list orders failed", "error", err)
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			h.log.Error("get order failed", "order_id", c.Param("order_id"), "error", err)
		}
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// SimulateWebhook force-sets an order's status for manual testing. The route
// is only registered outside production.
func (h *CheckoutHandler) SimulateWebhook(c *gin.Context) {
	orderID := c.Query("orderId")
	ok := c.DefaultQuery("ok", "true") == "true"

	status, err := h.svc.ForceStatus(c.Request.Context(), orderID, ok)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "status": status})
}
