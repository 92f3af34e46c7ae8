package models

// PaymentStatus is the outcome of a payment submission. Rejected is only ever
// returned to the caller; it is never stored.
type PaymentStatus string

const (
	StatusAuthorized PaymentStatus = "Authorized"
	StatusDeclined   PaymentStatus = "Declined"
	StatusRejected   PaymentStatus = "Rejected"
)

// PaymentRequest is an inbound payment submission. It carries the full card
// number and CVV and exists only for the duration of one request.
type PaymentRequest struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	Cvv         string `json:"cvv"`
}

// Payment is the stored record of a completed payment attempt. The card number
// is kept as its last four digits only; the CVV is never stored.
type Payment struct {
	ID                 string        `json:"id"`
	Amount             int64         `json:"amount"`
	CardNumberLastFour string        `json:"cardNumberLastFour"`
	Currency           string        `json:"currency"`
	ExpiryMonth        int           `json:"expiryMonth"`
	ExpiryYear         int           `json:"expiryYear"`
	Status             PaymentStatus `json:"status"`
}

// ValidationError describes a single failed validation rule.
type ValidationError struct {
	PropertyName string `json:"propertyName"`
	ErrorMessage string `json:"errorMessage"`
}
