package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Stepheeeen/impressa/internal/usecase"
)

// Client is the typed REST client over the impressa backend. Every storefront
// read and mutation goes through here: bearer auth is injected per call, and
// a circuit breaker sheds load when the backend is down instead of queueing
// page requests behind a dead upstream.
type Client struct {
	base    string
	hc      *http.Client
	timeout time.Duration
	ua      string
	cb      *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "impressa-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a 4xx is the backend answering, not the backend down
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.Status < 500
		},
	})
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		timeout: timeout,
		ua:      userAgent,
		cb:      cb,
	}
}

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend: status %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	// ensure per-call timeout if the caller didn't set one
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	raw, err := c.cb.Execute(func() ([]byte, error) {
		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			apiErr := &APIError{Status: resp.StatusCode}
			var e struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			if json.Unmarshal(b, &e) == nil {
				if e.Error != "" {
					apiErr.Message = e.Error
				} else {
					apiErr.Message = e.Message
				}
			}
			return nil, apiErr
		}
		return b, nil
	})
	if err != nil {
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// compile-time port checks
var (
	_ usecase.AuthAPI    = (*Client)(nil)
	_ usecase.CatalogAPI = (*Client)(nil)
	_ usecase.CartAPI    = (*Client)(nil)
	_ usecase.PaymentAPI = (*Client)(nil)
	_ usecase.OrderAPI   = (*Client)(nil)
)
