package gateway

import (
	"strings"
	"time"

	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/alovak/payment-gateway/internal/card"
)

const (
	notEmptyMessage         = "Must not be empty."
	onlyNumericMessage      = "Must only contain numeric characters."
	validCurrencyMessage    = "Must be a valid ISO currency code."
	futureExpiryDateMessage = "The expiry date must be in the future."
)

var currencyCodes = map[string]struct{}{
	"GBP": {},
	"EUR": {},
	"USD": {},
}

// A rule is one independent check against a submission. Rules never
// short-circuit each other; every failing rule contributes one entry to the
// result, in declaration order.
type rule struct {
	property string
	message  string
	failed   func(req models.PaymentRequest, today time.Time) bool
}

var paymentRules = []rule{
	{"CardNumber", notEmptyMessage, func(req models.PaymentRequest, _ time.Time) bool {
		return req.CardNumber == ""
	}},
	{"CardNumber", "Must be between 14 and 19 characters long.", func(req models.PaymentRequest, _ time.Time) bool {
		return len(req.CardNumber) < 14 || len(req.CardNumber) > 19
	}},
	{"CardNumber", onlyNumericMessage, func(req models.PaymentRequest, _ time.Time) bool {
		return !card.IsDigits(req.CardNumber)
	}},
	{"ExpiryMonth", notEmptyMessage, func(req models.PaymentRequest, _ time.Time) bool {
		return req.ExpiryMonth == 0
	}},
	{"ExpiryMonth", "Must be between 1 and 12.", func(req models.PaymentRequest, _ time.Time) bool {
		return req.ExpiryMonth < 1 || req.ExpiryMonth > 12
	}},
	{"ExpiryYear", notEmptyMessage, func(req models.PaymentRequest, _ time.Time) bool {
		return req.ExpiryYear == 0
	}},
	{"ExpiryYear", "Must be greater than or equal to the current year.", func(req models.PaymentRequest, today time.Time) bool {
		return req.ExpiryYear < today.Year()
	}},
	// Composite month/year check; runs on the raw values even when the
	// individual month or year rules failed.
	{"ExpiryMonth/ExpiryYear", futureExpiryDateMessage, func(req models.PaymentRequest, today time.Time) bool {
		return !isFutureExpiryDate(req.ExpiryMonth, req.ExpiryYear, today)
	}},
	{"Currency", validCurrencyMessage, func(req models.PaymentRequest, _ time.Time) bool {
		return !isValidCurrencyCode(req.Currency)
	}},
	{"Amount", notEmptyMessage, func(req models.PaymentRequest, _ time.Time) bool {
		return req.Amount == 0
	}},
	{"Amount", "Must be greater than or equal to 0.", func(req models.PaymentRequest, _ time.Time) bool {
		return req.Amount < 0
	}},
	{"Cvv", notEmptyMessage, func(req models.PaymentRequest, _ time.Time) bool {
		return req.Cvv == ""
	}},
	{"Cvv", "Must be between 3 and 4 characters long.", func(req models.PaymentRequest, _ time.Time) bool {
		return len(req.Cvv) < 3 || len(req.Cvv) > 4
	}},
	{"Cvv", onlyNumericMessage, func(req models.PaymentRequest, _ time.Time) bool {
		return !card.IsDigits(req.Cvv)
	}},
}

// Validator checks payment submissions against the gateway's acceptance rules.
type Validator struct {
	now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// WithClock overrides the reference date used by the expiry rules. Tests use
// it to pin "today".
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Validate evaluates every rule against the submission and returns the
// failures in rule-declaration order. An empty result means the submission is
// valid.
func (v *Validator) Validate(req models.PaymentRequest) []models.ValidationError {
	today := v.now()

	var failures []models.ValidationError
	for _, r := range paymentRules {
		if r.failed(req, today) {
			failures = append(failures, models.ValidationError{
				PropertyName: r.property,
				ErrorMessage: r.message,
			})
		}
	}

	return failures
}

// isFutureExpiryDate reports whether month/year denotes a month strictly after
// today's. The current month is already expired for card acceptance purposes.
func isFutureExpiryDate(month, year int, today time.Time) bool {
	if year > today.Year() {
		return true
	}
	if year == today.Year() && month > int(today.Month()) {
		return true
	}
	return false
}

func isValidCurrencyCode(currency string) bool {
	if currency == "" {
		return false
	}
	_, ok := currencyCodes[strings.ToUpper(currency)]
	return ok
}
