package domain

import "errors"

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

var ErrUnknownShippingMethod = errors.New("unknown shipping method")

// Pricing holds the storefront's fee schedule. Fees are configured, not
// hard-coded, so staging can run with different tiers.
type Pricing struct {
	ShippingStandardFee float64
	ShippingExpressFee  float64
	GiftWrapFee         float64
}

func (p Pricing) ShippingFee(m ShippingMethod) (float64, error) {
	switch m {
	case ShippingStandard, "":
		return p.ShippingStandardFee, nil
	case ShippingExpress:
		return p.ShippingExpressFee, nil
	default:
		return 0, ErrUnknownShippingMethod
	}
}

// Summary is the order-summary block of the cart view.
type Summary struct {
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shippingFee"`
	GiftWrapFee float64 `json:"giftWrapFee,omitempty"`
	Total       float64 `json:"total"`
}

// Quote computes the display totals for a cart. The server subtotal, when
// present, wins over item-level arithmetic.
func (p Pricing) Quote(c Cart, method ShippingMethod, giftWrap bool) (Summary, error) {
	shipping, err := p.ShippingFee(method)
	if err != nil {
		return Summary{}, err
	}
	var wrap float64
	if giftWrap {
		wrap = p.GiftWrapFee
	}
	sub := c.EffectiveSubtotal()
	return Summary{
		Subtotal:    sub,
		ShippingFee: shipping,
		GiftWrapFee: wrap,
		Total:       sub + shipping + wrap,
	}, nil
}
