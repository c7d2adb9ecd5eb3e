package backend

import (
	"context"
	"net/http"
	"net/url"

	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", domain.User{}, err
	}
	return out.Token, out.User, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (string, domain.User, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", domain.User{}, err
	}
	return out.Token, out.User, nil
}

func (c *Client) ListTemplates(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/templates", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTemplate(ctx context.Context, id string) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodGet, "/templates/"+url.PathEscape(id), "", nil, &out)
	return out, err
}

func (c *Client) FetchCart(ctx context.Context, token string) (domain.Cart, error) {
	var out domain.Cart
	err := c.do(ctx, http.MethodGet, "/cart/", token, nil, &out)
	return out, err
}

func (c *Client) AddItem(ctx context.Context, token string, in usecase.AddItemInput) error {
	return c.do(ctx, http.MethodPost, "/cart/add", token, in, nil)
}

func (c *Client) UpdateQuantity(ctx context.Context, token, itemID string, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart/update", token, map[string]any{
		"id":       itemID,
		"quantity": quantity,
	}, nil)
}

func (c *Client) RemoveItem(ctx context.Context, token, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/remove/"+url.PathEscape(itemID), token, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", token, nil, nil)
}

func (c *Client) Initialize(ctx context.Context, token string, in usecase.InitializePaymentInput) (string, string, error) {
	var out struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	}
	if err := c.do(ctx, http.MethodPost, "/pay/initialize", token, in, &out); err != nil {
		return "", "", err
	}
	return out.AuthorizationURL, out.Reference, nil
}

func (c *Client) Verify(ctx context.Context, token, reference string) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/pay/verify/"+url.PathEscape(reference), token, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *Client) ListMyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/user/me", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
