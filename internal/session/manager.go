package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"porthmadog-rfc/internal/clock"
	"porthmadog-rfc/internal/i18n"
)

const (
	// CookieName is the session cookie. HttpOnly, SameSite=Strict, Secure
	// over TLS, and no expiry so the browser drops it when closed.
	CookieName = "rfc_session"

	// DefaultTimeout is the sliding inactivity window for admin sessions.
	DefaultTimeout = 30 * time.Minute

	csrfTokenBytes = 32
)

var ErrBadCSRFToken = errors.New("invalid security token")

// Manager creates, rotates and destroys sessions and owns the CSRF token
// bound to each one.
type Manager struct {
	store   Store
	clock   clock.Clock
	timeout time.Duration
}

func NewManager(store Store, clk clock.Clock, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{store: store, clock: clk, timeout: timeout}
}

func (m *Manager) Timeout() time.Duration {
	return m.timeout
}

// Ensure returns the session for the request's cookie, creating a fresh one
// (and setting the cookie) when there is none. Idempotent per request.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		sess, err := m.store.Get(ctx, cookie.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("load session: %w", err)
		}
	}
	sess := &Session{
		ID:         uuid.NewString(),
		Lang:       i18n.English,
		LastActive: m.clock.Now(),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.setCookie(w, r, sess.ID)
	return sess, nil
}

// Expired reports whether an authenticated session has been idle past the
// inactivity window. Anonymous sessions never expire this way.
func (m *Manager) Expired(sess *Session) bool {
	if !sess.Authenticated() {
		return false
	}
	return m.clock.Now().Sub(sess.LastActive) >= m.timeout
}

// Touch refreshes the inactivity window. Called on every authenticated
// request that passes the gate, making the timeout sliding.
func (m *Manager) Touch(ctx context.Context, sess *Session) error {
	sess.LastActive = m.clock.Now()
	return m.store.Save(ctx, sess)
}

// Login binds the admin to the session and rotates its identifier so a
// pre-login identifier planted by an attacker never maps to the
// authenticated session. Session data (lang, CSRF token) carries over.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, sess *Session, adminID int64, adminName string) error {
	oldID := sess.ID
	sess.ID = uuid.NewString()
	sess.AdminID = adminID
	sess.AdminName = adminName
	sess.LastActive = m.clock.Now()
	if err := m.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := m.store.Delete(ctx, oldID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("drop old session: %w", err)
	}
	m.setCookie(w, r, sess.ID)
	return nil
}

// Logout clears all server-side state and expires the cookie.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	err := m.store.Delete(ctx, sess.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Destroy removes the server-side record without touching the cookie; used
// when an expired session is swept during the auth check.
func (m *Manager) Destroy(ctx context.Context, sess *Session) error {
	err := m.store.Delete(ctx, sess.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// CSRFToken returns the session's token, generating and persisting one on
// first use. The token lives for the whole session, across identifier
// rotation.
func (m *Manager) CSRFToken(ctx context.Context, sess *Session) (string, error) {
	if sess.CSRFToken != "" {
		return sess.CSRFToken, nil
	}
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	sess.CSRFToken = hex.EncodeToString(buf)
	if err := m.store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return sess.CSRFToken, nil
}

// ValidateCSRF compares a submitted token against the session's in constant
// time. A session that never issued a token rejects everything.
func (m *Manager) ValidateCSRF(sess *Session, submitted string) error {
	if sess.CSRFToken == "" || submitted == "" {
		return ErrBadCSRFToken
	}
	if subtle.ConstantTimeCompare([]byte(sess.CSRFToken), []byte(submitted)) != 1 {
		return ErrBadCSRFToken
	}
	return nil
}

// SetFlash stores a one-shot message shown on the next rendered page.
func (m *Manager) SetFlash(ctx context.Context, sess *Session, flashType, message string) error {
	sess.Flash = &Flash{Type: flashType, Message: message}
	return m.store.Save(ctx, sess)
}

// PopFlash returns and clears the pending flash message, if any.
func (m *Manager) PopFlash(ctx context.Context, sess *Session) (*Flash, error) {
	if sess.Flash == nil {
		return nil, nil
	}
	flash := sess.Flash
	sess.Flash = nil
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return flash, nil
}

// SetLang switches the visitor's language.
func (m *Manager) SetLang(ctx context.Context, sess *Session, lang i18n.Lang) error {
	sess.Lang = lang
	return m.store.Save(ctx, sess)
}

func (m *Manager) setCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}
