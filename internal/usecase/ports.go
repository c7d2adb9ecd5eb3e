package usecase

import (
	"context"
	"time"

	domain "github.com/Stepheeeen/impressa/internal/entity"
)

// Gateway ports over the remote backend (REST+JSON, bearer auth).

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (token string, user domain.User, err error)
	Register(ctx context.Context, username, email, password string) (token string, user domain.User, err error)
}

type CatalogAPI interface {
	ListTemplates(ctx context.Context) ([]domain.Product, error)
	GetTemplate(ctx context.Context, id string) (domain.Product, error)
}

type AddItemInput struct {
	TemplateID string  `json:"templateId,omitempty"`
	DesignID   string  `json:"designId,omitempty"`
	ItemType   string  `json:"itemType"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type CartAPI interface {
	FetchCart(ctx context.Context, token string) (domain.Cart, error)
	AddItem(ctx context.Context, token string, in AddItemInput) error
	UpdateQuantity(ctx context.Context, token, itemID string, quantity int) error
	RemoveItem(ctx context.Context, token, itemID string) error
	ClearCart(ctx context.Context, token string) error
}

type InitializePaymentInput struct {
	Email    string            `json:"email"`
	Amount   float64           `json:"amount"`
	OrderID  string            `json:"orderId"`
	Cart     []domain.CartItem `json:"cart"`
	Country  string            `json:"country"`
	State    string            `json:"state"`
	Address  string            `json:"address"`
	Phone    string            `json:"phone"`
	ItemType string            `json:"itemType"`
	Quantity int               `json:"quantity"`
}

type PaymentAPI interface {
	Initialize(ctx context.Context, token string, in InitializePaymentInput) (authorizationURL, reference string, err error)
	Verify(ctx context.Context, token, reference string) (status string, err error)
}

type OrderAPI interface {
	ListMyOrders(ctx context.Context, token string) ([]domain.Order, error)
}

// Session state (redis-backed).

type SessionStore interface {
	Load(ctx context.Context, sessionID string) (domain.Session, error)
	SaveAuth(ctx context.Context, sessionID, token string, user domain.User) error
	ClearAuth(ctx context.Context, sessionID string) error
	SaveAddress(ctx context.Context, sessionID string, addr domain.DeliveryAddress) error
}

// AuthEvents fans auth-state changes out to any view holding session state,
// the way the storage event kept browser tabs in sync.
type AuthEvents interface {
	PublishAuthChange(ctx context.Context, sessionID string) error
	SubscribeAuthChanges(ctx context.Context) (<-chan string, func(), error)
}

type PaymentStateStore interface {
	Put(ctx context.Context, ps domain.PaymentSession) error
	Get(ctx context.Context, reference string) (domain.PaymentSession, bool, error)
}

type CatalogCache interface {
	GetList(ctx context.Context) ([]domain.Product, bool, error)
	SetList(ctx context.Context, ps []domain.Product) error
}

// AuthorizationOpener hands the payment authorization URL to the visitor.
// An implementation that cannot (the popup-blocked case) returns an error,
// which is terminal for the attempt.
type AuthorizationOpener interface {
	Open(ctx context.Context, url string) error
}

// Clock abstracts timing for the confirmation poll so tests can drive it
// deterministically.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock is the wall clock used outside tests.
var SystemClock Clock = systemClock{}
