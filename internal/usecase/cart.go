package usecase

import (
	"context"
	"log/slog"

	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/logging"
)

// CartView is the composed cart page: items, display totals, and whether the
// backend cart could not be reached (in which case the view degrades to an
// empty cart but says so instead of failing silently).
type CartView struct {
	Items       []domain.CartItem `json:"items"`
	Summary     domain.Summary    `json:"summary"`
	Unavailable bool              `json:"unavailable,omitempty"`
}

// CartService owns cart retrieval and mutation. Every mutation is followed by
// a full refetch; there are no optimistic local updates. The backend owns
// correctness, so mutation failures are logged and the refetched state wins.
type CartService struct {
	api      CartAPI
	sessions SessionStore
	pricing  domain.Pricing
	log      *slog.Logger
}

func NewCartService(api CartAPI, sessions SessionStore, pricing domain.Pricing) *CartService {
	return &CartService{api: api, sessions: sessions, pricing: pricing, log: logging.New("cart")}
}

func (s *CartService) View(ctx context.Context, sessionID string, method domain.ShippingMethod, giftWrap bool) (CartView, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return s.compose(ctx, token, method, giftWrap)
}

func (s *CartService) Add(ctx context.Context, sessionID string, in AddItemInput) (CartView, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	if err := s.api.AddItem(ctx, token, in); err != nil {
		s.log.Warn("add to cart failed", "err", err)
	}
	return s.compose(ctx, token, domain.ShippingStandard, false)
}

// SetQuantity delegates to removal when the requested quantity drops below
// one. There is no upper clamp.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (CartView, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if itemID == "" {
		return s.compose(ctx, token, domain.ShippingStandard, false)
	}
	if quantity < 1 {
		if err := s.api.RemoveItem(ctx, token, itemID); err != nil {
			s.log.Warn("remove item failed", "item_id", itemID, "err", err)
		}
	} else if err := s.api.UpdateQuantity(ctx, token, itemID, quantity); err != nil {
		s.log.Warn("update quantity failed", "item_id", itemID, "err", err)
	}
	return s.compose(ctx, token, domain.ShippingStandard, false)
}

func (s *CartService) Remove(ctx context.Context, sessionID, itemID string) (CartView, error) {
	return s.SetQuantity(ctx, sessionID, itemID, 0)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) (CartView, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if err := s.api.ClearCart(ctx, token); err != nil {
		s.log.Warn("clear cart failed", "err", err)
	}
	return s.compose(ctx, token, domain.ShippingStandard, false)
}

func (s *CartService) token(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !sess.Authenticated() {
		return "", domain.ErrNotAuthenticated
	}
	return sess.Token, nil
}

func (s *CartService) compose(ctx context.Context, token string, method domain.ShippingMethod, giftWrap bool) (CartView, error) {
	cart, err := s.api.FetchCart(ctx, token)
	unavailable := false
	if err != nil {
		s.log.Warn("fetch cart failed", "err", err)
		cart = domain.Cart{}
		unavailable = true
	}
	summary, err := s.pricing.Quote(cart, method, giftWrap)
	if err != nil {
		return CartView{}, err
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return CartView{Items: cart.Items, Summary: summary, Unavailable: unavailable}, nil
}
