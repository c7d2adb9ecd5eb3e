package usecase

import (
	"context"
	"log/slog"

	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/logging"
)

// Authenticator drives login/register/logout against the backend and keeps
// the session store in step, notifying subscribers on every change.
type Authenticator struct {
	api      AuthAPI
	sessions SessionStore
	events   AuthEvents
	log      *slog.Logger
}

func NewAuthenticator(api AuthAPI, sessions SessionStore, events AuthEvents) *Authenticator {
	return &Authenticator{api: api, sessions: sessions, events: events, log: logging.New("auth")}
}

func (a *Authenticator) Login(ctx context.Context, sessionID, email, password string) (domain.User, error) {
	token, user, err := a.api.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}
	if err := a.sessions.SaveAuth(ctx, sessionID, token, user); err != nil {
		return domain.User{}, err
	}
	a.notify(ctx, sessionID)
	return user, nil
}

func (a *Authenticator) Register(ctx context.Context, sessionID, username, email, password string) (domain.User, error) {
	token, user, err := a.api.Register(ctx, username, email, password)
	if err != nil {
		return domain.User{}, err
	}
	if err := a.sessions.SaveAuth(ctx, sessionID, token, user); err != nil {
		return domain.User{}, err
	}
	a.notify(ctx, sessionID)
	return user, nil
}

func (a *Authenticator) Logout(ctx context.Context, sessionID string) error {
	if err := a.sessions.ClearAuth(ctx, sessionID); err != nil {
		return err
	}
	a.notify(ctx, sessionID)
	return nil
}

// notify is best effort: a missed fan-out only delays other views until their
// next session load.
func (a *Authenticator) notify(ctx context.Context, sessionID string) {
	if err := a.events.PublishAuthChange(ctx, sessionID); err != nil {
		a.log.Warn("auth change publish failed", "session_id", sessionID, "err", err)
	}
}
