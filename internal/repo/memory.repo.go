package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"checkout-mini-demo/internal/apperr"
	"checkout-mini-demo/internal/domain"
)

// memoryRepo keeps orders in a map. It backs tests and database-less local
// runs with the same contract the Postgres implementation has.
type memoryRepo struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryRepo() OrderRepo {
	return &memoryRepo{orders: make(map[string]domain.Order)}
}

func (m *memoryRepo) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.orders[order.OrderID]; exists {
		return apperr.ErrDuplicateOrder
	}
	m.orders[order.OrderID] = *order
	return nil
}

func (m *memoryRepo) FindByID(_ context.Context, orderID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, exists := m.orders[orderID]
	if !exists {
		return nil, apperr.ErrNotFound
	}
	return &order, nil
}

func (m *memoryRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := make([]domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (m *memoryRepo) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus, providerTx *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, exists := m.orders[orderID]
	if !exists {
		return apperr.ErrNotFound
	}

	order.Status = status
	if providerTx != nil {
		tx := *providerTx
		order.ProviderTx = &tx
	}
	order.UpdatedAt = time.Now().UTC()
	m.orders[orderID] = order
	return nil
}
