package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alovak/payment-gateway/bank"
	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// API is the HTTP API for the payment gateway service.
type API struct {
	service *Service
	logger  *slog.Logger
}

func NewAPI(service *Service, logger *slog.Logger) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", a.postPayment)
		r.Get("/{paymentID}", a.getPayment)
	})
}

type rejectedResponse struct {
	Status string                   `json:"status"`
	Errors []models.ValidationError `json:"errors"`
}

func (a *API) postPayment(w http.ResponseWriter, r *http.Request) {
	req := models.PaymentRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payment, err := a.service.SubmitPayment(r.Context(), req)
	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			writeJSON(w, http.StatusBadRequest, rejectedResponse{
				Status: string(models.StatusRejected),
				Errors: rejected.Failures,
			})
			return
		}

		// Upstream detail is logged, never echoed to the caller.
		var gatewayErr *bank.GatewayError
		if errors.As(err, &gatewayErr) {
			a.logger.Error("acquiring bank call failed", "err", err)
			http.Error(w, "payment could not be processed", http.StatusBadGateway)
			return
		}

		a.logger.Error("processing payment", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", "/payments/"+payment.ID)
	writeJSON(w, http.StatusCreated, payment)
}

func (a *API) getPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	// Identifiers are always gateway-generated UUIDs; anything else cannot
	// name a payment.
	if _, err := uuid.Parse(paymentID); err != nil {
		http.NotFound(w, r)
		return
	}

	payment, err := a.service.GetPayment(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.logger.Warn("payment not found", slog.String("payment_id", paymentID))
			http.NotFound(w, r)
		} else {
			a.logger.Error("getting payment", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
