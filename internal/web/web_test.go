package web

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"porthmadog-rfc/internal/clock"
	"porthmadog-rfc/internal/model"
	"porthmadog-rfc/internal/session"
	"porthmadog-rfc/internal/store"
)

const (
	testAdminUser     = "clubadmin"
	testAdminPassword = "correct horse battery"
)

type testEnv struct {
	t         *testing.T
	server    *httptest.Server
	client    *http.Client
	store     *store.MemoryStore
	clock     *clock.Mock
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	templates, err := NewTemplates(os.DirFS("../.."))
	require.NoError(t, err)

	appStore := store.NewMemoryStore()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = appStore.UpsertAdmin(model.AdminUser{Username: testAdminUser, PasswordHash: string(hash)})
	require.NoError(t, err)

	mock := clock.NewMock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	sessions := session.NewManager(session.NewMemoryStore(), mock, session.DefaultTimeout)
	uploadDir := t.TempDir()

	srv := NewServer(Options{
		Store:     appStore,
		Sessions:  sessions,
		Templates: templates,
		UploadDir: uploadDir,
		Clock:     mock,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		t:         t,
		server:    ts,
		client:    &http.Client{Jar: jar},
		store:     appStore,
		clock:     mock,
		uploadDir: uploadDir,
	}
}

func (e *testEnv) get(path string) *http.Response {
	e.t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(e.t, err)
	return resp
}

// getNoFollow issues a GET that stops at the first redirect so the status
// and Location header can be asserted.
func (e *testEnv) getNoFollow(path string) *http.Response {
	e.t.Helper()
	client := &http.Client{
		Jar:           e.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.Get(e.server.URL + path)
	require.NoError(e.t, err)
	return resp
}

func (e *testEnv) postForm(path string, form url.Values) *http.Response {
	e.t.Helper()
	resp, err := e.client.PostForm(e.server.URL+path, form)
	require.NoError(e.t, err)
	return resp
}

func (e *testEnv) postFormNoFollow(path string, form url.Values) *http.Response {
	e.t.Helper()
	client := &http.Client{
		Jar:           e.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.PostForm(e.server.URL+path, form)
	require.NoError(e.t, err)
	return resp
}

// postMultipartNoFollow submits a multipart form carrying one file, stopping
// at the first redirect.
func (e *testEnv) postMultipartNoFollow(path string, fields url.Values, fileField, filename string, content []byte) *http.Response {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range fields {
		for _, v := range vals {
			require.NoError(e.t, mw.WriteField(key, v))
		}
	}
	part, err := mw.CreateFormFile(fileField, filename)
	require.NoError(e.t, err)
	_, err = part.Write(content)
	require.NoError(e.t, err)
	require.NoError(e.t, mw.Close())

	client := &http.Client{
		Jar:           e.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.Post(e.server.URL+path, mw.FormDataContentType(), &buf)
	require.NoError(e.t, err)
	return resp
}

func (e *testEnv) doc(resp *http.Response) *goquery.Document {
	e.t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(e.t, err)
	return doc
}

func (e *testEnv) csrfToken(path string) string {
	e.t.Helper()
	doc := e.doc(e.get(path))
	token, ok := doc.Find(`input[name="csrf_token"]`).First().Attr("value")
	require.True(e.t, ok, "page %s should carry a csrf token", path)
	require.Len(e.t, token, 64)
	return token
}

func (e *testEnv) login() string {
	e.t.Helper()
	token := e.csrfToken("/admin/login")
	resp := e.postForm("/admin/login", url.Values{
		"csrf_token": {token},
		"username":   {testAdminUser},
		"password":   {testAdminPassword},
	})
	doc := e.doc(resp)
	require.Contains(e.t, doc.Find("h1").First().Text(), "Dashboard")
	return token
}

func TestPublicHomeRenders(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	doc := env.doc(resp)
	assert.Equal(t, "Porthmadog RFC", doc.Find(".brand").First().Text())
	assert.Equal(t, "Home", doc.Find("nav a").First().Text())
}

func TestLanguageSwitchPersistsInSession(t *testing.T) {
	env := newTestEnv(t)
	env.get("/") // establish the session cookie

	resp := env.get("/setlang?lang=cy")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	doc := env.doc(env.get("/players"))
	assert.Equal(t, "Hafan", doc.Find("nav a").First().Text())
	assert.Contains(t, doc.Find("h1").First().Text(), "Chwaraewyr")

	// An unknown code is ignored.
	env.get("/setlang?lang=fr").Body.Close()
	doc = env.doc(env.get("/players"))
	assert.Equal(t, "Hafan", doc.Find("nav a").First().Text())
}

func TestUnknownPlayerReturns404(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get("/players/9999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminRequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.getNoFollow("/admin/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	token := env.csrfToken("/admin/login")

	for _, creds := range []url.Values{
		{"csrf_token": {token}, "username": {testAdminUser}, "password": {"wrong"}},
		{"csrf_token": {token}, "username": {"nobody"}, "password": {testAdminPassword}},
	} {
		doc := env.doc(env.postForm("/admin/login", creds))
		assert.Contains(t, doc.Find(".flash-error").Text(), "Invalid username or password.",
			"same message regardless of which part was wrong")
	}

	resp := env.getNoFollow("/admin/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginPostWithoutCSRFTokenIsRejected(t *testing.T) {
	env := newTestEnv(t)
	env.get("/admin/login").Body.Close()

	resp := env.postForm("/admin/login", url.Values{
		"username": {testAdminUser},
		"password": {testAdminPassword},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginAndLogout(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	resp := env.postFormNoFollow("/admin/logout", url.Values{"csrf_token": {token}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	resp = env.getNoFollow("/admin/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()
}

func TestFixtureCreateFollowsPostRedirectGet(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	resp := env.postFormNoFollow("/admin/fixtures/save", url.Values{
		"csrf_token": {token},
		"match_date": {"2026-03-01T15:00"},
		"opponent":   {"Bangor"},
		"location":   {"home"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/fixtures", resp.Header.Get("Location"))
	resp.Body.Close()

	fixtures := env.store.ListFixtures()
	require.Len(t, fixtures, 1)
	assert.Equal(t, "Bangor", fixtures[0].Opponent)
	assert.Equal(t, time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC), fixtures[0].MatchDate)

	doc := env.doc(env.get("/admin/fixtures"))
	assert.Contains(t, doc.Find(".flash-success").Text(), "Fixture added.")

	// Reloading the list page must not resubmit anything.
	doc = env.doc(env.get("/admin/fixtures"))
	assert.Empty(t, doc.Find(".flash-success").Text())
	assert.Len(t, env.store.ListFixtures(), 1)
}

func TestMutationWithoutCSRFTokenHasNoEffect(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	resp := env.postFormNoFollow("/admin/fixtures/save", url.Values{
		"match_date": {"2026-03-01T15:00"},
		"opponent":   {"Bangor"},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, env.store.ListFixtures())
}

func TestPlayerDeleteRemovesRowAndStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	player, err := env.store.CreatePlayer(model.Player{Name: "Rhys Jones", SquadNumber: 10})
	require.NoError(t, err)
	_, err = env.store.SaveStat(model.PlayerSeasonStat{PlayerID: player.ID, Season: "2025/26", Tries: 4})
	require.NoError(t, err)

	resp := env.postFormNoFollow("/admin/players/"+formatID(player.ID)+"/delete", url.Values{
		"csrf_token": {token},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	_, ok := env.store.GetPlayer(player.ID)
	assert.False(t, ok)
	assert.Empty(t, env.store.ListStatsForPlayer(player.ID))
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPlayerSaveStoresUploadedPhoto(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	resp := env.postMultipartNoFollow("/admin/players/save", url.Values{
		"csrf_token": {token},
		"name":       {"Gareth Hughes"},
		"position":   {"Hooker"},
	}, "photo", "gareth.png", pngBytes)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/players", resp.Header.Get("Location"))
	resp.Body.Close()

	players := env.store.ListPlayers()
	require.Len(t, players, 1)
	require.True(t, strings.HasPrefix(players[0].PhotoPath, "players/"))

	_, err := os.Stat(filepath.Join(env.uploadDir, filepath.FromSlash(players[0].PhotoPath)))
	assert.NoError(t, err)
}

func TestPlayerSaveRejectsBadUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	resp := env.postMultipartNoFollow("/admin/players/save", url.Values{
		"csrf_token": {token},
		"name":       {"Emyr Lloyd"},
	}, "photo", "clip.gif", []byte("GIF89a\x01\x00\x01\x00"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	doc := env.doc(resp)
	assert.Contains(t, doc.Find(".flash-error").Text(), "JPG and PNG")

	assert.Empty(t, env.store.ListPlayers(), "rejected upload must not create the row")
	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may reach the upload root")
}

func TestPlayerDeleteRemovesBackingPhoto(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	photoAbs := filepath.Join(env.uploadDir, "players", "dewi.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(photoAbs), 0o755))
	require.NoError(t, os.WriteFile(photoAbs, pngBytes, 0o644))

	player, err := env.store.CreatePlayer(model.Player{Name: "Dewi Morgan", PhotoPath: "players/dewi.png"})
	require.NoError(t, err)

	resp := env.postFormNoFollow("/admin/players/"+formatID(player.ID)+"/delete", url.Values{
		"csrf_token": {token},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	_, ok := env.store.GetPlayer(player.ID)
	assert.False(t, ok)
	_, err = os.Stat(photoAbs)
	assert.True(t, os.IsNotExist(err), "backing photo must be deleted with the row")
}

func TestSessionTimeoutForcesReLogin(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	env.clock.Advance(session.DefaultTimeout - time.Minute)
	doc := env.doc(env.get("/admin/"))
	assert.Contains(t, doc.Find("h1").First().Text(), "Dashboard", "window still open")

	env.clock.Advance(session.DefaultTimeout)
	resp := env.getNoFollow("/admin/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login?reason=timeout", resp.Header.Get("Location"))
	resp.Body.Close()

	doc = env.doc(env.get("/admin/login?reason=timeout"))
	assert.Contains(t, doc.Find(".flash-error").Text(), "session expired")
}

func TestClubInfoValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	doc := env.doc(env.postForm("/admin/club", url.Values{
		"csrf_token":    {token},
		"contact_email": {"not-an-email"},
	}))
	assert.Contains(t, doc.Find(".flash-error").Text(), "not valid")
	_, ok := env.store.GetClubInfo()
	assert.False(t, ok, "invalid submission must not be saved")

	resp := env.postFormNoFollow("/admin/club", url.Values{
		"csrf_token":      {token},
		"contact_email":   {"club@example.org"},
		"social_facebook": {"https://facebook.com/porthmadogrfc"},
		"founded_year":    {"1974"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	info, ok := env.store.GetClubInfo()
	require.True(t, ok)
	assert.Equal(t, "club@example.org", info.ContactEmail)
	assert.Equal(t, 1974, info.FoundedYear)
}

func TestHistoryContentRendersAsHTML(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	resp := env.postFormNoFollow("/admin/history", url.Values{
		"csrf_token":      {token},
		"history_content": {"<p>Founded in <strong>1974</strong>.</p>"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	doc := env.doc(env.get("/history"))
	assert.Equal(t, "1974", doc.Find(".history-content strong").Text(), "admin HTML renders unescaped")
}
