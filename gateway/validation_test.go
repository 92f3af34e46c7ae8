package gateway_test

import (
	"testing"
	"time"

	"github.com/alovak/payment-gateway/gateway"
	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/stretchr/testify/require"
)

// Tests pin "today" to June 2025.
func june2025() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	}
}

func newValidator() *gateway.Validator {
	return gateway.NewValidator().WithClock(june2025())
}

func validRequest() models.PaymentRequest {
	return models.PaymentRequest{
		CardNumber:  "4111111111111111",
		ExpiryMonth: 3,
		ExpiryYear:  2027,
		Currency:    "EUR",
		Amount:      15000,
		Cvv:         "5000",
	}
}

func properties(failures []models.ValidationError) []string {
	var props []string
	for _, f := range failures {
		props = append(props, f.PropertyName)
	}
	return props
}

func TestValidate_ValidRequest(t *testing.T) {
	require.Empty(t, newValidator().Validate(validRequest()))
}

func TestValidate_Deterministic(t *testing.T) {
	v := newValidator()
	req := models.PaymentRequest{Currency: "XYZ", Cvv: "12a"}

	first := v.Validate(req)
	second := v.Validate(req)
	require.Equal(t, first, second)
}

func TestValidate_CardNumber(t *testing.T) {
	cases := []struct {
		name       string
		cardNumber string
		wantProps  []string
	}{
		{"empty", "", []string{"CardNumber", "CardNumber"}},
		{"too short", "4111111111111", []string{"CardNumber"}},
		{"too long", "41111111111111111111", []string{"CardNumber"}},
		{"non numeric", "41111111111111a1", []string{"CardNumber"}},
		{"min length ok", "41111111111111", nil},
		{"max length ok", "4111111111111111111", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			req.CardNumber = c.cardNumber

			failures := newValidator().Validate(req)
			require.Equal(t, c.wantProps, properties(failures))
		})
	}
}

func TestValidate_ExpiryMonth(t *testing.T) {
	req := validRequest()
	req.ExpiryMonth = 13

	failures := newValidator().Validate(req)
	require.Equal(t, []string{"ExpiryMonth"}, properties(failures))
	require.Equal(t, "Must be between 1 and 12.", failures[0].ErrorMessage)
}

func TestValidate_ExpiryMonthZero(t *testing.T) {
	req := validRequest()
	req.ExpiryMonth = 0

	// Zero fails both month rules; the composite still passes because the
	// year is in the future.
	failures := newValidator().Validate(req)
	require.Equal(t, []string{"ExpiryMonth", "ExpiryMonth"}, properties(failures))
}

func TestValidate_ExpiryYearInPast(t *testing.T) {
	req := validRequest()
	req.ExpiryYear = 2024

	failures := newValidator().Validate(req)
	require.Equal(t, []string{"ExpiryYear", "ExpiryMonth/ExpiryYear"}, properties(failures))
}

func TestValidate_CompositeRunsWithInvalidMonth(t *testing.T) {
	req := validRequest()
	req.ExpiryMonth = 0
	req.ExpiryYear = 2025 // current year, raw month 0 is not in the future

	failures := newValidator().Validate(req)
	require.Equal(t,
		[]string{"ExpiryMonth", "ExpiryMonth", "ExpiryMonth/ExpiryYear"},
		properties(failures))
	require.Equal(t, "The expiry date must be in the future.", failures[2].ErrorMessage)
}

func TestValidate_ExpiryBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		month int
		year  int
		valid bool
	}{
		{"current month", 6, 2025, false},
		{"previous month", 5, 2025, false},
		{"next month", 7, 2025, true},
		{"january next year", 1, 2026, true},
		{"december current year", 12, 2025, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			req.ExpiryMonth = c.month
			req.ExpiryYear = c.year

			failures := newValidator().Validate(req)
			if c.valid {
				require.Empty(t, failures)
			} else {
				require.Equal(t, []string{"ExpiryMonth/ExpiryYear"}, properties(failures))
			}
		})
	}
}

func TestValidate_Currency(t *testing.T) {
	cases := []struct {
		currency string
		valid    bool
	}{
		{"GBP", true},
		{"EUR", true},
		{"USD", true},
		{"eur", true},
		{"uSd", true},
		{"", false},
		{"AUD", false},
		{"EURO", false},
	}

	for _, c := range cases {
		req := validRequest()
		req.Currency = c.currency

		failures := newValidator().Validate(req)
		if c.valid {
			require.Empty(t, failures, "currency %q", c.currency)
		} else {
			require.Equal(t, []string{"Currency"}, properties(failures), "currency %q", c.currency)
			require.Equal(t, "Must be a valid ISO currency code.", failures[0].ErrorMessage)
		}
	}
}

func TestValidate_Amount(t *testing.T) {
	req := validRequest()
	req.Amount = 0
	failures := newValidator().Validate(req)
	require.Equal(t, []string{"Amount"}, properties(failures))

	req.Amount = -1
	failures = newValidator().Validate(req)
	require.Equal(t, []string{"Amount"}, properties(failures))
	require.Equal(t, "Must be greater than or equal to 0.", failures[0].ErrorMessage)
}

func TestValidate_Cvv(t *testing.T) {
	cases := []struct {
		name      string
		cvv       string
		wantProps []string
	}{
		{"empty", "", []string{"Cvv", "Cvv"}},
		{"too short", "12", []string{"Cvv"}},
		{"too long", "12345", []string{"Cvv"}},
		{"non numeric", "12a", []string{"Cvv"}},
		{"three digits", "123", nil},
		{"four digits", "1234", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			req.Cvv = c.cvv

			failures := newValidator().Validate(req)
			require.Equal(t, c.wantProps, properties(failures))
		})
	}
}

func TestValidate_CollectsIndependentFailures(t *testing.T) {
	req := models.PaymentRequest{
		CardNumber:  "123",
		ExpiryMonth: 13,
		ExpiryYear:  2020,
		Currency:    "AUD",
		Amount:      -5,
		Cvv:         "12",
	}

	failures := newValidator().Validate(req)
	require.Equal(t, []string{
		"CardNumber",
		"ExpiryMonth",
		"ExpiryYear",
		"ExpiryMonth/ExpiryYear",
		"Currency",
		"Amount",
		"Cvv",
	}, properties(failures))
}
