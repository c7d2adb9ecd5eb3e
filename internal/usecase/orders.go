package usecase

import (
	"context"

	domain "github.com/Stepheeeen/impressa/internal/entity"
)

// Orders serves the order-history view for the signed-in visitor.
type Orders struct {
	api      OrderAPI
	sessions SessionStore
}

func NewOrders(api OrderAPI, sessions SessionStore) *Orders {
	return &Orders{api: api, sessions: sessions}
}

func (o *Orders) History(ctx context.Context, sessionID string) ([]domain.Order, error) {
	sess, err := o.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	orders, err := o.api.ListMyOrders(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
