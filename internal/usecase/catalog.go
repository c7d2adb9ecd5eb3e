package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/logging"
)

const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// BrowseFilter narrows the catalog the same way the products page does:
// category exact match, colors any-match, optional customizable-only.
type BrowseFilter struct {
	Category         string
	Colors           []string
	CustomizableOnly bool
	SortBy           string
}

// Catalog serves the product list and detail views, with a short-TTL cache
// in front of the backend list call.
type Catalog struct {
	api   CatalogAPI
	cache CatalogCache
	log   *slog.Logger
}

func NewCatalog(api CatalogAPI, cache CatalogCache) *Catalog {
	return &Catalog{api: api, cache: cache, log: logging.New("catalog")}
}

func (c *Catalog) Browse(ctx context.Context, f BrowseFilter) ([]domain.Product, error) {
	products, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	out := filterProducts(products, f)
	sortProducts(out, f.SortBy)
	return out, nil
}

func (c *Catalog) Detail(ctx context.Context, id string) (domain.Product, error) {
	return c.api.GetTemplate(ctx, id)
}

func (c *Catalog) list(ctx context.Context) ([]domain.Product, error) {
	if cached, ok, err := c.cache.GetList(ctx); err == nil && ok {
		return cached, nil
	} else if err != nil {
		c.log.Warn("catalog cache read failed", "err", err)
	}
	products, err := c.api.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetList(ctx, products); err != nil {
		c.log.Warn("catalog cache write failed", "err", err)
	}
	return products, nil
}

func filterProducts(products []domain.Product, f BrowseFilter) []domain.Product {
	wantColors := make(map[string]struct{}, len(f.Colors))
	for _, c := range f.Colors {
		wantColors[strings.ToLower(c)] = struct{}{}
	}
	category := strings.ToLower(f.Category)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != "all" && strings.ToLower(p.Category) != category {
			continue
		}
		if len(wantColors) > 0 && !anyColorMatch(p.Colors, wantColors) {
			continue
		}
		if f.CustomizableOnly && !p.Customizable {
			continue
		}
		out = append(out, p)
	}
	return out
}

func anyColorMatch(colors []string, want map[string]struct{}) bool {
	for _, c := range colors {
		if _, ok := want[strings.ToLower(c)]; ok {
			return true
		}
	}
	return false
}

// sortProducts is stable so the "featured" order (backend order) survives
// every other sort as the tie-break.
func sortProducts(products []domain.Product, by string) {
	switch by {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortName:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Title < products[j].Title })
	}
}
