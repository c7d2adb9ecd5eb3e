package http

import (
	"context"

	"github.com/Stepheeeen/impressa/internal/usecase"
)

// RedirectOpener satisfies the authorization-opener port for the HTTP
// surface: the URL travels back in the checkout response and the browser
// opens it, so the server-side hand-off itself cannot be blocked. Other
// front-ends (or tests) plug in openers that can fail.
type RedirectOpener struct{}

func (RedirectOpener) Open(context.Context, string) error { return nil }

var _ usecase.AuthorizationOpener = RedirectOpener{}
