package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porthmadog-rfc/internal/clock"
	"porthmadog-rfc/internal/i18n"
)

func newTestManager(t *testing.T) (*Manager, *clock.Mock, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	mock := clock.NewMock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	return NewManager(store, mock, DefaultTimeout), mock, store
}

func ensureSession(t *testing.T, m *Manager) (*Session, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := m.Ensure(context.Background(), w, r)
	require.NoError(t, err)
	return sess, w
}

func TestEnsureCreatesSessionAndSetsCookie(t *testing.T) {
	m, _, _ := newTestManager(t)

	sess, w := ensureSession(t, m)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, i18n.English, sess.Lang)
	assert.False(t, sess.Authenticated())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, sess.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestEnsureReturnsExistingSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	first, w := ensureSession(t, m)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(w.Result().Cookies()[0])
	second, err := m.Ensure(context.Background(), httptest.NewRecorder(), r)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestExpiredUsesSlidingWindow(t *testing.T) {
	m, mock, _ := newTestManager(t)
	sess, w := ensureSession(t, m)
	require.NoError(t, m.Login(context.Background(), w, httptest.NewRequest(http.MethodPost, "/admin/login", nil), sess, 1, "gwylim"))

	mock.Advance(DefaultTimeout - time.Second)
	assert.False(t, m.Expired(sess))

	require.NoError(t, m.Touch(context.Background(), sess))
	mock.Advance(DefaultTimeout - time.Second)
	assert.False(t, m.Expired(sess), "touch should restart the window")

	mock.Advance(time.Second)
	assert.True(t, m.Expired(sess), "window crossed without activity")
}

func TestAnonymousSessionsNeverExpire(t *testing.T) {
	m, mock, _ := newTestManager(t)
	sess, _ := ensureSession(t, m)

	mock.Advance(48 * time.Hour)
	assert.False(t, m.Expired(sess))
}

func TestLoginRotatesSessionID(t *testing.T) {
	m, _, store := newTestManager(t)
	sess, _ := ensureSession(t, m)
	oldID := sess.ID

	token, err := m.CSRFToken(context.Background(), sess)
	require.NoError(t, err)
	require.NoError(t, m.SetLang(context.Background(), sess, i18n.Welsh))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	require.NoError(t, m.Login(context.Background(), rec, r, sess, 7, "gwylim"))

	assert.NotEqual(t, oldID, sess.ID)
	assert.True(t, sess.Authenticated())

	_, err = store.Get(context.Background(), oldID)
	assert.ErrorIs(t, err, ErrNotFound, "pre-login identifier must be dead")

	loaded, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, token, loaded.CSRFToken, "session data carries across rotation")
	assert.Equal(t, i18n.Welsh, loaded.Lang)
	assert.Equal(t, int64(7), loaded.AdminID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sess.ID, cookies[0].Value)
}

func TestLogoutDeletesSessionAndExpiresCookie(t *testing.T) {
	m, _, store := newTestManager(t)
	sess, _ := ensureSession(t, m)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Logout(context.Background(), rec, sess))

	_, err := store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestCSRFTokenIsStableAndValidates(t *testing.T) {
	m, _, _ := newTestManager(t)
	sess, _ := ensureSession(t, m)

	token, err := m.CSRFToken(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, token, 64)

	again, err := m.CSRFToken(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	assert.NoError(t, m.ValidateCSRF(sess, token))
	assert.ErrorIs(t, m.ValidateCSRF(sess, "deadbeef"), ErrBadCSRFToken)
	assert.ErrorIs(t, m.ValidateCSRF(sess, ""), ErrBadCSRFToken)
}

func TestCSRFTokenFromAnotherSessionIsRejected(t *testing.T) {
	m, _, _ := newTestManager(t)
	first, _ := ensureSession(t, m)
	second, _ := ensureSession(t, m)

	otherToken, err := m.CSRFToken(context.Background(), second)
	require.NoError(t, err)

	_, err = m.CSRFToken(context.Background(), first)
	require.NoError(t, err)
	assert.ErrorIs(t, m.ValidateCSRF(first, otherToken), ErrBadCSRFToken)
}

func TestValidateCSRFWithoutIssuedTokenRejects(t *testing.T) {
	m, _, _ := newTestManager(t)
	sess, _ := ensureSession(t, m)

	assert.ErrorIs(t, m.ValidateCSRF(sess, "anything"), ErrBadCSRFToken)
}

func TestFlashIsPoppedOnce(t *testing.T) {
	m, _, store := newTestManager(t)
	sess, _ := ensureSession(t, m)

	require.NoError(t, m.SetFlash(context.Background(), sess, "success", "Player added."))

	flash, err := m.PopFlash(context.Background(), sess)
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, "success", flash.Type)
	assert.Equal(t, "Player added.", flash.Message)

	flash, err = m.PopFlash(context.Background(), sess)
	require.NoError(t, err)
	assert.Nil(t, flash)

	loaded, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.Flash)
}
