package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Stepheeeen/impressa/internal/usecase"
)

func timeoutCtx(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}

type CatalogHandler struct {
	catalog *usecase.Catalog
}

func NewCatalogHandler(catalog *usecase.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /views/products?category=&colors=&customizable=&sort=
func (h *CatalogHandler) Browse(c *gin.Context) {
	filter := usecase.BrowseFilter{
		Category:         c.Query("category"),
		CustomizableOnly: c.Query("customizable") == "true",
		SortBy:           c.DefaultQuery("sort", usecase.SortFeatured),
	}
	if raw := c.Query("colors"); raw != "" {
		filter.Colors = strings.Split(raw, ",")
	}

	ctx, cancel := timeoutCtx(c, 5*time.Second)
	defer cancel()

	products, err := h.catalog.Browse(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GET /views/products/:id
func (h *CatalogHandler) Detail(c *gin.Context) {
	ctx, cancel := timeoutCtx(c, 5*time.Second)
	defer cancel()

	product, err := h.catalog.Detail(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
