package gateway

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

type pgRepository struct {
	db *sql.DB
}

// NewPGRepository constructs a Postgres-backed repository over the
// gateway.payments table.
func NewPGRepository(db *sql.DB) Repository {
	return &pgRepository{db: db}
}

func (r *pgRepository) Add(ctx context.Context, payment *models.Payment) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO gateway.payments(payment_id, amount, card_last4, currency, expiry_month, expiry_year, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, payment.ID, payment.Amount, payment.CardNumberLastFour, payment.Currency,
		payment.ExpiryMonth, payment.ExpiryYear, string(payment.Status))
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *pgRepository) Get(ctx context.Context, id string) (*models.Payment, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT payment_id, amount, card_last4, currency, expiry_month, expiry_year, status
          FROM gateway.payments
         WHERE payment_id=$1
    `, id)

	var payment models.Payment
	var status string
	if err := row.Scan(&payment.ID, &payment.Amount, &payment.CardNumberLastFour,
		&payment.Currency, &payment.ExpiryMonth, &payment.ExpiryYear, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	payment.Status = models.PaymentStatus(status)

	return &payment, nil
}

func (r *pgRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "23505" {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		return true
	}
	return false
}
