package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Stepheeeen/impressa/internal/entity"
)

const (
	testInterval = 4 * time.Second
	testCeiling  = 120 * time.Second
)

var goodAddress = domain.DeliveryAddress{
	Country: "Nigeria",
	State:   "Lagos",
	Address: "12 Marina Road",
	Phone:   "08012345678",
}

type checkoutFixture struct {
	payments *mockPaymentAPI
	cart     *mockCartAPI
	sessions *mockSessionStore
	states   *memStateStore
	opener   *mockOpener
	checkout *Checkout
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		payments: &mockPaymentAPI{initURL: "https://pay.example/auth/xyz", initRef: "ref-1"},
		cart: &mockCartAPI{cart: domain.Cart{Items: []domain.CartItem{
			{ID: "a", ItemType: "hoodie", UnitPrice: 10000, Quantity: 2},
		}}},
		sessions: authedSession(),
		states:   newMemStateStore(),
		opener:   &mockOpener{},
	}
	f.checkout = NewCheckout(
		f.payments, f.cart, f.sessions, f.states,
		f.opener, newFakeClock(), testPricing,
		testInterval, testCeiling,
	)
	return f
}

func awaitState(t *testing.T, states *memStateStore, ref string, want domain.PaymentState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return states.state(ref) == want
	}, 2*time.Second, 5*time.Millisecond, "expected state %s, got %s", want, states.state(ref))
}

func TestCheckout_BlockedOnIncompleteAddress(t *testing.T) {
	f := newCheckoutFixture(t)

	for _, addr := range []domain.DeliveryAddress{
		{},
		{Country: "Nigeria", State: "Lagos", Address: "12 Marina Road"}, // no phone
		{Country: "Nigeria", State: " ", Address: "12 Marina Road", Phone: "080"},
	} {
		_, err := f.checkout.Start(context.Background(), StartCheckoutInput{
			SessionID: "sid-1", Address: addr, ShippingMethod: domain.ShippingStandard,
		})
		assert.ErrorIs(t, err, domain.ErrIncompleteAddress)
	}
	// no network call was issued
	assert.Zero(t, f.payments.initCount())
	assert.Nil(t, f.sessions.savedAddr)
}

func TestCheckout_PersistsAddressBeforeInitializing(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	require.NoError(t, err)
	require.NotNil(t, f.sessions.savedAddr)
	assert.Equal(t, goodAddress, *f.sessions.savedAddr)
}

func TestCheckout_InitializePayload(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payments.verifyQueue = []verifyResult{{status: "success"}}

	ps, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingExpress, GiftWrap: true,
	})
	require.NoError(t, err)

	in := f.payments.lastInit
	assert.Equal(t, "ada@impressa.com", in.Email)
	// subtotal 20000 + express 2500 + gift wrap 2500
	assert.Equal(t, 25000.0, in.Amount)
	assert.NotEmpty(t, in.OrderID)
	assert.Equal(t, ps.OrderID, in.OrderID)
	assert.Len(t, in.Cart, 1)
	assert.Equal(t, "hoodie", in.ItemType)
	assert.Equal(t, 2, in.Quantity)
	assert.Equal(t, "Nigeria", in.Country)
	assert.Equal(t, "08012345678", in.Phone)

	awaitState(t, f.states, "ref-1", domain.PaymentConfirmed)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.cart.cart = domain.Cart{}

	_, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, f.payments.initCount())
}

func TestCheckout_InitFailureAbortsFlow(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payments.initErr = errors.New("gateway 500")

	_, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	assert.ErrorIs(t, err, ErrPaymentInit)
	assert.Zero(t, f.payments.verifyCount())
}

func TestCheckout_BlockedOpenerIsTerminal(t *testing.T) {
	f := newCheckoutFixture(t)
	f.opener.err = errors.New("popup blocked")

	ps, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	assert.ErrorIs(t, err, ErrAuthorizationBlocked)
	assert.Equal(t, domain.PaymentBlocked, ps.State)
	assert.Equal(t, domain.PaymentBlocked, f.states.state("ref-1"))
	// no polling after a blocked hand-off
	assert.Zero(t, f.payments.verifyCount())
}

func TestCheckout_ConfirmsAfterPendingResponses(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payments.verifyQueue = []verifyResult{
		{status: "pending"},
		{status: "pending"},
		{status: "pending"},
		{status: "success"},
	}

	ps, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentInitialized, ps.State)
	assert.Equal(t, "https://pay.example/auth/xyz", ps.AuthorizationURL)

	awaitState(t, f.states, "ref-1", domain.PaymentConfirmed)
	// stopped within one interval of the success response
	assert.Equal(t, 4, f.payments.verifyCount())
	assert.True(t, f.cart.wasCleared())
}

func TestCheckout_PaidStatusAlsoConfirms(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payments.verifyQueue = []verifyResult{{status: "paid"}}

	_, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	require.NoError(t, err)
	awaitState(t, f.states, "ref-1", domain.PaymentConfirmed)
}

func TestCheckout_VerifyErrorsAreTransient(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payments.verifyQueue = []verifyResult{
		{err: errors.New("timeout")},
		{err: errors.New("connection refused")},
		{status: "success"},
	}

	_, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	require.NoError(t, err)
	awaitState(t, f.states, "ref-1", domain.PaymentConfirmed)
	assert.Equal(t, 3, f.payments.verifyCount())
}

func TestCheckout_AbandonedAtCeiling(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payments.verifyQueue = []verifyResult{{status: "pending"}} // repeats forever

	_, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	require.NoError(t, err)

	awaitState(t, f.states, "ref-1", domain.PaymentAbandoned)
	// ceiling/interval = 120/4 = 30 attempts, no more
	assert.Equal(t, 30, f.payments.verifyCount())
	assert.False(t, f.cart.wasCleared())
}

func TestCheckout_OutcomeHook(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payments.verifyQueue = []verifyResult{{status: "success"}}

	outcomes := make(chan string, 1)
	f.checkout.OutcomeHook = func(state string) { outcomes <- state }

	_, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	require.NoError(t, err)

	select {
	case state := <-outcomes:
		assert.Equal(t, "confirmed", state)
	case <-time.After(2 * time.Second):
		t.Fatal("outcome hook never fired")
	}
}

func TestCheckout_StatusLookup(t *testing.T) {
	f := newCheckoutFixture(t)
	f.payments.verifyQueue = []verifyResult{{status: "success"}}

	ps, err := f.checkout.Start(context.Background(), StartCheckoutInput{
		SessionID: "sid-1", Address: goodAddress, ShippingMethod: domain.ShippingStandard,
	})
	require.NoError(t, err)
	awaitState(t, f.states, ps.Reference, domain.PaymentConfirmed)

	got, err := f.checkout.Status(context.Background(), ps.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentConfirmed, got.State)

	_, err = f.checkout.Status(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
