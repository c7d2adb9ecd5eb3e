package domain

import "time"

// PaymentState tracks a checkout attempt through the confirmation machine:
// Initialized -> Polling -> Confirmed | Abandoned | Blocked.
type PaymentState string

const (
	PaymentInitialized PaymentState = "initialized"
	PaymentPolling     PaymentState = "polling"
	PaymentConfirmed   PaymentState = "confirmed"
	PaymentAbandoned   PaymentState = "abandoned"
	PaymentBlocked     PaymentState = "blocked"
)

// Terminal reports whether no further transitions are possible.
func (s PaymentState) Terminal() bool {
	switch s {
	case PaymentConfirmed, PaymentAbandoned, PaymentBlocked:
		return true
	}
	return false
}

// PaymentSession is the ephemeral record of one checkout attempt. It exists
// only for the lifetime of the confirmation poll plus a short grace TTL.
type PaymentSession struct {
	OrderID          string       `json:"orderId"`
	Reference        string       `json:"reference"`
	AuthorizationURL string       `json:"authorizationUrl,omitempty"`
	Amount           float64      `json:"amount"`
	State            PaymentState `json:"state"`
	Attempts         int          `json:"attempts"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}
