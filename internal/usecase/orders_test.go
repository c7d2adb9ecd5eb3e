package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Stepheeeen/impressa/internal/entity"
)

type mockOrderAPI struct {
	orders []domain.Order
	err    error
	token  string
}

func (m *mockOrderAPI) ListMyOrders(_ context.Context, token string) ([]domain.Order, error) {
	m.token = token
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func TestHistory_PassesBearerToken(t *testing.T) {
	api := &mockOrderAPI{orders: []domain.Order{{ID: "656aa1b2c3d4e5f6a7b8c9d0", Status: domain.StatusPaid}}}
	o := NewOrders(api, authedSession())

	orders, err := o.History(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "tok-1", api.token)
	assert.Equal(t, "b8c9d0", orders[0].ShortID())
}

func TestHistory_RequiresAuth(t *testing.T) {
	o := NewOrders(&mockOrderAPI{}, &mockSessionStore{})

	_, err := o.History(context.Background(), "sid-1")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestHistory_EmptyNotNil(t *testing.T) {
	o := NewOrders(&mockOrderAPI{}, authedSession())

	orders, err := o.History(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
