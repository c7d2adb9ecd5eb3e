package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Stepheeeen/impressa/internal/adapter/http/middleware"
	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

type OrdersHandler struct {
	orders   *usecase.Orders
	sessions usecase.SessionStore
}

func NewOrdersHandler(orders *usecase.Orders, sessions usecase.SessionStore) *OrdersHandler {
	return &OrdersHandler{orders: orders, sessions: sessions}
}

type orderView struct {
	ID              string                  `json:"id"`
	ShortID         string                  `json:"shortId"`
	ItemType        string                  `json:"itemType"`
	Quantity        int                     `json:"quantity"`
	Total           string                  `json:"total"`
	Status          domain.Status           `json:"status"`
	StatusTone      string                  `json:"statusTone"`
	PaymentRef      string                  `json:"paymentRef"`
	DeliveryAddress *domain.DeliveryAddress `json:"deliveryAddress,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// GET /views/orders
func (h *OrdersHandler) History(c *gin.Context) {
	ctx, cancel := timeoutCtx(c, 5*time.Second)
	defer cancel()

	orders, err := h.orders.History(ctx, middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView{
			ID:              o.ID,
			ShortID:         o.ShortID(),
			ItemType:        o.ItemType,
			Quantity:        o.Quantity,
			Total:           domain.FormatNaira(o.TotalAmount),
			Status:          o.Status,
			StatusTone:      o.Status.BadgeTone(),
			PaymentRef:      o.PaymentRef,
			DeliveryAddress: o.DeliveryAddress,
			CreatedAt:       o.CreatedAt,
			UpdatedAt:       o.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": views, "count": len(views)})
}

// GET /views/account
func (h *OrdersHandler) Account(c *gin.Context) {
	sess, ok := middleware.Session(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    sess.User,
		"address": sess.Address,
	})
}

type addressReq struct {
	Country string `json:"country" binding:"required"`
	State   string `json:"state" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// PUT /account/address
func (h *OrdersHandler) UpdateAddress(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	addr := domain.DeliveryAddress{Country: req.Country, State: req.State, Address: req.Address, Phone: req.Phone}
	if err := addr.Validate(); err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := timeoutCtx(c, 3*time.Second)
	defer cancel()

	if err := h.sessions.SaveAddress(ctx, middleware.SessionID(c), addr); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": addr})
}
