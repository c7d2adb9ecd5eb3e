package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Stepheeeen/impressa/internal/adapter/http/middleware"
	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

type CartHandler struct {
	cart *usecase.CartService
}

func NewCartHandler(cart *usecase.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

func shippingPrefs(c *gin.Context) (domain.ShippingMethod, bool) {
	method := domain.ShippingMethod(c.DefaultQuery("shipping", string(domain.ShippingStandard)))
	return method, c.Query("giftWrap") == "true"
}

// GET /views/cart?shipping=standard|express&giftWrap=true
func (h *CartHandler) View(c *gin.Context) {
	method, giftWrap := shippingPrefs(c)

	ctx, cancel := timeoutCtx(c, 5*time.Second)
	defer cancel()

	view, err := h.cart.View(ctx, middleware.SessionID(c), method, giftWrap)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type addItemReq struct {
	TemplateID string  `json:"templateId"`
	DesignID   string  `json:"designId"`
	ItemType   string  `json:"itemType" binding:"required"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price" binding:"required,gt=0"`
}

// POST /cart/items
func (h *CartHandler) Add(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := timeoutCtx(c, 8*time.Second)
	defer cancel()

	view, err := h.cart.Add(ctx, middleware.SessionID(c), usecase.AddItemInput{
		TemplateID: req.TemplateID,
		DesignID:   req.DesignID,
		ItemType:   req.ItemType,
		Quantity:   req.Quantity,
		Price:      req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

// POST /cart/items/:id/quantity — zero or negative removes the item
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := timeoutCtx(c, 8*time.Second)
	defer cancel()

	view, err := h.cart.SetQuantity(ctx, middleware.SessionID(c), c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /cart/items/:id
func (h *CartHandler) Remove(c *gin.Context) {
	ctx, cancel := timeoutCtx(c, 8*time.Second)
	defer cancel()

	view, err := h.cart.Remove(ctx, middleware.SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	ctx, cancel := timeoutCtx(c, 8*time.Second)
	defer cancel()

	view, err := h.cart.Clear(ctx, middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
