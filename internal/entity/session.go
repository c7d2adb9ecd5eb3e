package domain

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")

// User is the profile blob stored alongside the token at login.
type User struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session is the explicit per-visitor state object. It replaces the scattered
// browser-storage reads of earlier revisions: token, profile, and delivery
// details live together, keyed by a session id.
type Session struct {
	ID      string          `json:"id"`
	Token   string          `json:"token,omitempty"`
	User    *User           `json:"user,omitempty"`
	Address DeliveryAddress `json:"address"`
}

func (s Session) Authenticated() bool { return s.Token != "" }
