package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/Stepheeeen/impressa/internal/entity"
)

type mockSessionStore struct {
	mu        sync.Mutex
	sess      domain.Session
	loadErr   error
	savedAddr *domain.DeliveryAddress
	authSaved bool
	cleared   bool
}

func (m *mockSessionStore) Load(context.Context, string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.Session{}, m.loadErr
	}
	return m.sess, nil
}

func (m *mockSessionStore) SaveAuth(_ context.Context, _, token string, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authSaved = true
	m.sess.Token = token
	m.sess.User = &user
	return nil
}

func (m *mockSessionStore) ClearAuth(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = true
	m.sess.Token = ""
	m.sess.User = nil
	return nil
}

func (m *mockSessionStore) SaveAddress(_ context.Context, _ string, addr domain.DeliveryAddress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedAddr = &addr
	return nil
}

type mockAuthEvents struct {
	mu        sync.Mutex
	published []string
}

func (m *mockAuthEvents) PublishAuthChange(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, sessionID)
	return nil
}

func (m *mockAuthEvents) SubscribeAuthChanges(context.Context) (<-chan string, func(), error) {
	ch := make(chan string)
	return ch, func() { close(ch) }, nil
}

type mockCartAPI struct {
	mu       sync.Mutex
	cart     domain.Cart
	fetchErr error
	mutErr   error
	calls    []string
	removed  []string
	updated  map[string]int
	cleared  bool
}

func (m *mockCartAPI) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *mockCartAPI) FetchCart(context.Context, string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("fetch")
	if m.fetchErr != nil {
		return domain.Cart{}, m.fetchErr
	}
	return m.cart, nil
}

func (m *mockCartAPI) AddItem(_ context.Context, _ string, in AddItemInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("add")
	if m.mutErr != nil {
		return m.mutErr
	}
	m.cart.Items = append(m.cart.Items, domain.CartItem{
		TemplateID: in.TemplateID,
		ItemType:   in.ItemType,
		Quantity:   in.Quantity,
		UnitPrice:  in.Price,
	})
	return nil
}

func (m *mockCartAPI) UpdateQuantity(_ context.Context, _, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("update")
	if m.mutErr != nil {
		return m.mutErr
	}
	if m.updated == nil {
		m.updated = map[string]int{}
	}
	m.updated[itemID] = quantity
	return nil
}

func (m *mockCartAPI) RemoveItem(_ context.Context, _, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("remove")
	if m.mutErr != nil {
		return m.mutErr
	}
	m.removed = append(m.removed, itemID)
	for i, it := range m.cart.Items {
		if it.EffectiveID() == itemID {
			m.cart.Items = append(m.cart.Items[:i], m.cart.Items[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockCartAPI) ClearCart(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("clear")
	if m.mutErr != nil {
		return m.mutErr
	}
	m.cleared = true
	m.cart.Items = nil
	return nil
}

func (m *mockCartAPI) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockCartAPI) wasCleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

type mockPaymentAPI struct {
	mu          sync.Mutex
	initURL     string
	initRef     string
	initErr     error
	initCalls   int
	lastInit    InitializePaymentInput
	verifyQueue []verifyResult // consumed in order; last entry repeats
	verifyCalls int
}

type verifyResult struct {
	status string
	err    error
}

func (m *mockPaymentAPI) Initialize(_ context.Context, _ string, in InitializePaymentInput) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls++
	m.lastInit = in
	if m.initErr != nil {
		return "", "", m.initErr
	}
	return m.initURL, m.initRef, nil
}

func (m *mockPaymentAPI) Verify(context.Context, string, string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifyCalls++
	if len(m.verifyQueue) == 0 {
		return "", errors.New("no verify result scripted")
	}
	r := m.verifyQueue[0]
	if len(m.verifyQueue) > 1 {
		m.verifyQueue = m.verifyQueue[1:]
	}
	return r.status, r.err
}

func (m *mockPaymentAPI) verifyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verifyCalls
}

func (m *mockPaymentAPI) initCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initCalls
}

type memStateStore struct {
	mu     sync.Mutex
	states map[string]domain.PaymentSession
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: map[string]domain.PaymentSession{}}
}

func (m *memStateStore) Put(_ context.Context, ps domain.PaymentSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[ps.Reference] = ps
	return nil
}

func (m *memStateStore) Get(_ context.Context, reference string) (domain.PaymentSession, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ps, ok := m.states[reference]
	return ps, ok, nil
}

func (m *memStateStore) state(reference string) domain.PaymentState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[reference].State
}

type mockOpener struct {
	mu     sync.Mutex
	err    error
	opened []string
}

func (m *mockOpener) Open(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.opened = append(m.opened, url)
	return nil
}

// fakeClock fires every After immediately so the confirmation poll runs at
// test speed; Now still advances by the requested interval per tick.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.now = f.now.Add(d)
	now := f.now
	f.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

type mockAuthAPI struct {
	token    string
	user     domain.User
	loginErr error
}

func (m *mockAuthAPI) Login(context.Context, string, string) (string, domain.User, error) {
	if m.loginErr != nil {
		return "", domain.User{}, m.loginErr
	}
	return m.token, m.user, nil
}

func (m *mockAuthAPI) Register(context.Context, string, string, string) (string, domain.User, error) {
	if m.loginErr != nil {
		return "", domain.User{}, m.loginErr
	}
	return m.token, m.user, nil
}

type mockCatalogAPI struct {
	mu       sync.Mutex
	products []domain.Product
	listErr  error
	lists    int
}

func (m *mockCatalogAPI) ListTemplates(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockCatalogAPI) GetTemplate(_ context.Context, id string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, errors.New("not found")
}

type memCatalogCache struct {
	mu       sync.Mutex
	products []domain.Product
	set      bool
}

func (m *memCatalogCache) GetList(context.Context) ([]domain.Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products, m.set, nil
}

func (m *memCatalogCache) SetList(_ context.Context, ps []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products, m.set = ps, true
	return nil
}
