// Package bank talks to the acquiring bank. A request is only built from a
// submission that has already passed validation.
package bank

import "fmt"

// AuthorizationRequest is the normalized projection of a submission sent to
// the acquiring bank. It carries the full card number and CVV verbatim.
type AuthorizationRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	Cvv         string `json:"cvv"`
}

// AuthorizationResult is the bank's decision. AuthorizationCode may be empty
// when the payment was not authorized.
type AuthorizationResult struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorization_code"`
}

// GatewayError reports a bank call that did not complete successfully at the
// transport level. It is neither a validation failure nor a decline.
type GatewayError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *GatewayError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("bank request failed: %s", e.Reason)
	}
	return fmt.Sprintf("bank request failed: status=%d reason=%s content=%q", e.StatusCode, e.Reason, e.Body)
}
