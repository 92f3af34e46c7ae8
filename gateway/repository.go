package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/alovak/payment-gateway/gateway/models"
)

var (
	ErrNotFound = fmt.Errorf("not found")
	ErrConflict = fmt.Errorf("conflict")
)

// Repository stores completed payments keyed by ID. Records are insert-only;
// no update or delete path exists. Implementations must be safe for
// concurrent Add and Get.
type Repository interface {
	Add(ctx context.Context, payment *models.Payment) error
	Get(ctx context.Context, id string) (*models.Payment, error)
	Ping(ctx context.Context) error
}

type memRepository struct {
	mu       sync.RWMutex
	payments map[string]models.Payment
}

// NewRepository returns the in-memory repository. Storage is ephemeral: it
// lives and dies with the process.
func NewRepository() Repository {
	return &memRepository{
		payments: make(map[string]models.Payment),
	}
}

func (r *memRepository) Add(ctx context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.ID]; ok {
		return fmt.Errorf("payment %s already exists: %w", payment.ID, ErrConflict)
	}
	r.payments[payment.ID] = *payment

	return nil
}

func (r *memRepository) Get(ctx context.Context, id string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &payment, nil
}

func (r *memRepository) Ping(ctx context.Context) error {
	return nil
}
