package domain

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

// Order is one entry of the order history returned by the backend.
type Order struct {
	ID              string           `json:"_id"`
	ItemType        string           `json:"itemType"`
	Quantity        int              `json:"quantity"`
	TotalAmount     float64          `json:"totalAmount"`
	Status          Status           `json:"status"`
	PaymentRef      string           `json:"paymentRef"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// BadgeTone maps a status onto the tone the orders page renders its pill
// with. Unknown statuses render as pending.
func (s Status) BadgeTone() string {
	switch s {
	case StatusPaid, StatusDelivered:
		return "success"
	case StatusShipped:
		return "info"
	default:
		return "warning"
	}
}

// ShortID is the display form: the last six characters of the backend id.
func (o Order) ShortID() string {
	if len(o.ID) <= 6 {
		return o.ID
	}
	return o.ID[len(o.ID)-6:]
}
