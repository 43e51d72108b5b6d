package session

import (
	"context"
	"errors"
	"time"

	"porthmadog-rfc/internal/i18n"
)

var ErrNotFound = errors.New("session not found")

// Flash is a one-shot message stored in the session and discarded on the
// next rendered page.
type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Session is the server-side record keyed by the opaque identifier held in
// the client cookie. AdminID is zero for anonymous visitors.
type Session struct {
	ID         string    `json:"id"`
	AdminID    int64     `json:"admin_id"`
	AdminName  string    `json:"admin_name"`
	Lang       i18n.Lang `json:"lang"`
	CSRFToken  string    `json:"csrf_token"`
	LastActive time.Time `json:"last_active"`
	Flash      *Flash    `json:"flash,omitempty"`
}

// Authenticated reports whether an admin is bound to the session. It says
// nothing about the inactivity window; the manager checks that.
func (s *Session) Authenticated() bool {
	return s != nil && s.AdminID != 0
}

// Store persists sessions keyed by identifier. The memory implementation
// backs development and tests; Redis backs production.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
