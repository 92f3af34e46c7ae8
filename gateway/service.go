package gateway

import (
	"context"
	"fmt"

	"github.com/alovak/payment-gateway/bank"
	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/alovak/payment-gateway/internal/card"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// AcquiringBank is the upstream bank the gateway forwards authorization
// requests to.
type AcquiringBank interface {
	Authorize(ctx context.Context, req bank.AuthorizationRequest) (bank.AuthorizationResult, error)
}

// RejectedError carries the validation failures of a rejected submission.
// Rejected submissions never reach the bank or the store.
type RejectedError struct {
	Failures []models.ValidationError
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("payment rejected: %d validation failure(s)", len(e.Failures))
}

// Service orchestrates the payment submission pipeline: validation, the bank
// call, status derivation and persistence.
type Service struct {
	repo      Repository
	acquirer  AcquiringBank
	validator *Validator
	logger    *slog.Logger
}

func NewService(repo Repository, acquirer AcquiringBank, validator *Validator, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		acquirer:  acquirer,
		validator: validator,
		logger:    logger,
	}
}

// SubmitPayment runs one submission through the pipeline and returns the
// stored record. It returns a *RejectedError when validation fails and wraps
// the *bank.GatewayError when the bank call does not complete; in neither
// case is a record stored.
func (s *Service) SubmitPayment(ctx context.Context, req models.PaymentRequest) (*models.Payment, error) {
	if failures := s.validator.Validate(req); len(failures) > 0 {
		return nil, &RejectedError{Failures: failures}
	}

	result, err := s.acquirer.Authorize(ctx, bank.AuthorizationRequest{
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		Currency:    req.Currency,
		Amount:      req.Amount,
		Cvv:         req.Cvv,
	})
	if err != nil {
		return nil, fmt.Errorf("authorizing payment: %w", err)
	}

	status := models.StatusDeclined
	if result.Authorized {
		status = models.StatusAuthorized
	}

	payment := &models.Payment{
		ID:                 uuid.New().String(),
		Amount:             req.Amount,
		CardNumberLastFour: card.Mask(req.CardNumber),
		Currency:           req.Currency,
		ExpiryMonth:        req.ExpiryMonth,
		ExpiryYear:         req.ExpiryYear,
		Status:             status,
	}

	if err := s.repo.Add(ctx, payment); err != nil {
		return nil, fmt.Errorf("storing payment: %w", err)
	}

	// The authorization code is logged for reconciliation but never stored.
	s.logger.Info("payment processed",
		slog.String("payment_id", payment.ID),
		slog.String("status", string(payment.Status)),
		slog.String("authorization_code", result.AuthorizationCode),
	)

	return payment, nil
}

// GetPayment looks up a stored payment. Absence is reported as ErrNotFound,
// not treated as a fault.
func (s *Service) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	payment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding payment: %w", err)
	}

	return payment, nil
}
