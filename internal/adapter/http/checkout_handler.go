package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Stepheeeen/impressa/internal/adapter/http/middleware"
	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

type CheckoutHandler struct {
	checkout *usecase.Checkout
}

func NewCheckoutHandler(checkout *usecase.Checkout) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type startCheckoutReq struct {
	Country        string `json:"country"`
	State          string `json:"state"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	ShippingMethod string `json:"shippingMethod"`
	GiftWrap       bool   `json:"giftWrap"`
}

type startCheckoutResp struct {
	OrderID          string              `json:"orderId"`
	Reference        string              `json:"reference"`
	AuthorizationURL string              `json:"authorizationUrl"`
	State            domain.PaymentState `json:"state"`
}

// POST /checkout — kicks off a payment attempt. The response carries the
// authorization URL the browser must open; confirmation continues server-side
// and is observable via GET /checkout/:reference.
func (h *CheckoutHandler) Start(c *gin.Context) {
	var req startCheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := timeoutCtx(c, 15*time.Second)
	defer cancel()

	ps, err := h.checkout.Start(ctx, usecase.StartCheckoutInput{
		SessionID: middleware.SessionID(c),
		Address: domain.DeliveryAddress{
			Country: req.Country,
			State:   req.State,
			Address: req.Address,
			Phone:   req.Phone,
		},
		ShippingMethod: domain.ShippingMethod(req.ShippingMethod),
		GiftWrap:       req.GiftWrap,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, startCheckoutResp{
		OrderID:          ps.OrderID,
		Reference:        ps.Reference,
		AuthorizationURL: ps.AuthorizationURL,
		State:            ps.State,
	})
}

// GET /checkout/:reference — current state of the confirmation machine.
func (h *CheckoutHandler) Status(c *gin.Context) {
	ctx, cancel := timeoutCtx(c, 3*time.Second)
	defer cancel()

	ps, err := h.checkout.Status(ctx, c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference": ps.Reference,
		"orderId":   ps.OrderID,
		"state":     ps.State,
		"attempts":  ps.Attempts,
		"updatedAt": ps.UpdatedAt,
	})
}
