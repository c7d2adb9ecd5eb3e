package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/logging"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrAuthorizationBlocked = errors.New("payment authorization window blocked")
	ErrPaymentInit          = errors.New("payment initialization failed")
	ErrPaymentNotFound      = errors.New("payment session not found")
)

// verify statuses the backend reports as paid
func paidStatus(s string) bool { return s == "success" || s == "paid" }

// Checkout drives one payment attempt through an explicit state machine:
//
//	Initialized -> Polling -> Confirmed | Abandoned | Blocked
//
// Start validates the delivery details, persists them, initializes a payment
// session with the backend, hands the authorization URL to the opener, and
// spawns the confirmation poll. The poll hits the verify endpoint once per
// interval; verification errors are treated as transient and swallowed until
// the ceiling, after which the attempt is recorded as abandoned.
type Checkout struct {
	payments PaymentAPI
	cart     CartAPI
	sessions SessionStore
	states   PaymentStateStore
	opener   AuthorizationOpener
	clock    Clock
	pricing  domain.Pricing

	interval time.Duration
	ceiling  time.Duration
	log      *slog.Logger

	// OutcomeHook, when set, is called once per attempt with the terminal
	// state name (metrics wiring lives in the adapter layer).
	OutcomeHook func(state string)
}

func NewCheckout(
	payments PaymentAPI,
	cart CartAPI,
	sessions SessionStore,
	states PaymentStateStore,
	opener AuthorizationOpener,
	clock Clock,
	pricing domain.Pricing,
	interval, ceiling time.Duration,
) *Checkout {
	if clock == nil {
		clock = SystemClock
	}
	return &Checkout{
		payments: payments,
		cart:     cart,
		sessions: sessions,
		states:   states,
		opener:   opener,
		clock:    clock,
		pricing:  pricing,
		interval: interval,
		ceiling:  ceiling,
		log:      logging.New("checkout"),
	}
}

type StartCheckoutInput struct {
	SessionID      string
	Address        domain.DeliveryAddress
	ShippingMethod domain.ShippingMethod
	GiftWrap       bool
}

// Start runs steps 1-5 of the flow synchronously and returns with the poll
// already running in the background. The returned session carries the
// authorization URL the caller must send the visitor to.
func (c *Checkout) Start(ctx context.Context, in StartCheckoutInput) (domain.PaymentSession, error) {
	// 1. validate before any network call
	if err := in.Address.Validate(); err != nil {
		return domain.PaymentSession{}, err
	}

	sess, err := c.sessions.Load(ctx, in.SessionID)
	if err != nil {
		return domain.PaymentSession{}, err
	}
	if !sess.Authenticated() || sess.User == nil {
		return domain.PaymentSession{}, domain.ErrNotAuthenticated
	}

	// 2. persist the address so it survives reloads
	if err := c.sessions.SaveAddress(ctx, in.SessionID, in.Address); err != nil {
		return domain.PaymentSession{}, err
	}

	// 3. payable amount, same derivation as the cart view
	cart, err := c.cart.FetchCart(ctx, sess.Token)
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("fetch cart: %w", err)
	}
	if cart.IsEmpty() {
		return domain.PaymentSession{}, ErrEmptyCart
	}
	summary, err := c.pricing.Quote(cart, in.ShippingMethod, in.GiftWrap)
	if err != nil {
		return domain.PaymentSession{}, err
	}

	// 4. request a payment session
	orderID := uuid.NewString()
	itemType, quantity := summarizeItems(cart.Items)
	authURL, reference, err := c.payments.Initialize(ctx, sess.Token, InitializePaymentInput{
		Email:    sess.User.Email,
		Amount:   summary.Total,
		OrderID:  orderID,
		Cart:     cart.Items,
		Country:  in.Address.Country,
		State:    in.Address.State,
		Address:  in.Address.Address,
		Phone:    in.Address.Phone,
		ItemType: itemType,
		Quantity: quantity,
	})
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}

	ps := domain.PaymentSession{
		OrderID:          orderID,
		Reference:        reference,
		AuthorizationURL: authURL,
		Amount:           summary.Total,
		State:            domain.PaymentInitialized,
		UpdatedAt:        c.clock.Now(),
	}

	// 5. hand off the authorization URL; a blocked opener is terminal
	if err := c.opener.Open(ctx, authURL); err != nil {
		ps.State = domain.PaymentBlocked
		c.record(ctx, ps)
		c.outcome(ps.State)
		return ps, ErrAuthorizationBlocked
	}
	c.record(ctx, ps)

	// 6.-7. confirmation poll, detached from the request context
	go c.poll(context.WithoutCancel(ctx), sess.Token, ps)

	return ps, nil
}

// Status reports the current state of a payment attempt by reference.
func (c *Checkout) Status(ctx context.Context, reference string) (domain.PaymentSession, error) {
	ps, ok, err := c.states.Get(ctx, reference)
	if err != nil {
		return domain.PaymentSession{}, err
	}
	if !ok {
		return domain.PaymentSession{}, ErrPaymentNotFound
	}
	return ps, nil
}

func (c *Checkout) poll(ctx context.Context, token string, ps domain.PaymentSession) {
	l := c.log.With("reference", ps.Reference, "order_id", ps.OrderID)

	ps.State = domain.PaymentPolling
	c.record(ctx, ps)

	maxAttempts := int(c.ceiling / c.interval)
	for ps.Attempts < maxAttempts {
		select {
		case <-ctx.Done():
			return
		case <-c.clock.After(c.interval):
		}
		ps.Attempts++

		status, err := c.payments.Verify(ctx, token, ps.Reference)
		if err != nil {
			// transient: keep polling until the ceiling
			l.Debug("verify failed", "attempt", ps.Attempts, "err", err)
			continue
		}
		if paidStatus(status) {
			if err := c.cart.ClearCart(ctx, token); err != nil {
				l.Warn("clear cart after payment failed", "err", err)
			}
			ps.State = domain.PaymentConfirmed
			ps.UpdatedAt = c.clock.Now()
			c.record(ctx, ps)
			c.outcome(ps.State)
			l.Info("payment confirmed", "attempts", ps.Attempts)
			return
		}
	}

	ps.State = domain.PaymentAbandoned
	ps.UpdatedAt = c.clock.Now()
	c.record(ctx, ps)
	c.outcome(ps.State)
	l.Warn("payment not confirmed before ceiling", "attempts", ps.Attempts)
}

func (c *Checkout) outcome(state domain.PaymentState) {
	if c.OutcomeHook != nil {
		c.OutcomeHook(string(state))
	}
}

func (c *Checkout) record(ctx context.Context, ps domain.PaymentSession) {
	if err := c.states.Put(ctx, ps); err != nil {
		c.log.Warn("record payment state failed", "reference", ps.Reference, "err", err)
	}
}

// summarizeItems collapses the cart into the item-type/quantity pair the
// initialize payload carries: the dominant item type and the total quantity.
func summarizeItems(items []domain.CartItem) (string, int) {
	counts := map[string]int{}
	total := 0
	for _, it := range items {
		q := it.Quantity
		if q < 1 {
			q = 1
		}
		counts[it.ItemType] += q
		total += q
	}
	best, bestN := "", -1
	for t, n := range counts {
		if n > bestN && t != "" {
			best, bestN = t, n
		}
	}
	if best == "" {
		best = "standard"
	}
	return best, total
}
