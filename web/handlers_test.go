package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"parley/auth"
	"parley/moderation"
	"parley/observability"
	"parley/repositories"
	"parley/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	moderator, err := moderation.NewModerator([]string{"badger"}, '*', log)
	require.NoError(t, err)

	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = writer.Close()
	})

	signer := auth.NewTokenSigner("test-secret", time.Hour)
	monitor := observability.NewMonitor(log)
	searchService := services.NewSearchService(writer, log)
	authService := services.NewAuthService(repositories.NewUserRepository(), signer)
	chatService := services.NewChatService(repositories.NewRoomRepository(), moderator, searchService, monitor, log)

	server := NewServer(log, authService, chatService, searchService, signer, monitor, 1024)
	ts := httptest.NewServer(server.Routes())
	t.Cleanup(ts.Close)
	return ts
}

// newClient returns a cookie-aware client that does not follow
// redirects, so tests can assert on Location headers.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(url, form)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func get(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func registerAndLogin(t *testing.T, client *http.Client, baseURL, login, name, secret string) {
	t.Helper()
	resp := postForm(t, client, baseURL+"/users/new", url.Values{
		"login": {login}, "name": {name}, "secret": {secret}, "secret2": {secret},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = postForm(t, client, baseURL+"/login", url.Values{
		"login": {login}, "secret": {secret},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestAnonymousCallersAreRedirectedToLogin(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	client := newClient(t)

	for _, path := range []string{"/", "/chat/1", "/chat/1/since/1", "/rooms", "/search"} {
		resp := get(t, client, ts.URL+path)
		req.Equal(http.StatusSeeOther, resp.StatusCode, "path=%s", path)
		req.Equal("/login", resp.Header.Get("Location"), "path=%s", path)
	}
}

func TestRegistration(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	client := newClient(t)

	t.Run("mismatched secrets bounce back", func(t *testing.T) {
		resp := postForm(t, client, ts.URL+"/users/new", url.Values{
			"login": {"alice"}, "name": {"Alice"}, "secret": {"pw1"}, "secret2": {"pw2"},
		})
		req.Equal(http.StatusSeeOther, resp.StatusCode)
		req.Contains(resp.Header.Get("Location"), "/users/new?error=")
	})

	t.Run("valid registration lands on the login screen", func(t *testing.T) {
		resp := postForm(t, client, ts.URL+"/users/new", url.Values{
			"login": {"alice"}, "name": {"Alice"}, "secret": {"pw1"}, "secret2": {"pw1"},
		})
		req.Equal(http.StatusSeeOther, resp.StatusCode)
		req.Contains(resp.Header.Get("Location"), "/login?message=")
	})

	t.Run("duplicate login is rejected", func(t *testing.T) {
		resp := postForm(t, client, ts.URL+"/users/new", url.Values{
			"login": {"alice"}, "name": {"Alice2"}, "secret": {"pw2"}, "secret2": {"pw2"},
		})
		req.Equal(http.StatusSeeOther, resp.StatusCode)
		req.Contains(resp.Header.Get("Location"), "/users/new?error=")
	})
}

func TestLoginAndLogout(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	client := newClient(t)

	postForm(t, client, ts.URL+"/users/new", url.Values{
		"login": {"alice"}, "name": {"Alice"}, "secret": {"pw1"}, "secret2": {"pw1"},
	})

	t.Run("wrong secret bounces back", func(t *testing.T) {
		resp := postForm(t, client, ts.URL+"/login", url.Values{
			"login": {"alice"}, "secret": {"wrong"},
		})
		req.Equal(http.StatusSeeOther, resp.StatusCode)
		req.Contains(resp.Header.Get("Location"), "/login?error=")
	})

	t.Run("unknown login bounces the same way", func(t *testing.T) {
		resp := postForm(t, client, ts.URL+"/login", url.Values{
			"login": {"ghost"}, "secret": {"pw1"},
		})
		req.Contains(resp.Header.Get("Location"), "/login?error=")
	})

	t.Run("correct secret opens a session", func(t *testing.T) {
		resp := postForm(t, client, ts.URL+"/login", url.Values{
			"login": {"alice"}, "secret": {"pw1"},
		})
		req.Equal("/", resp.Header.Get("Location"))

		resp = get(t, client, ts.URL+"/")
		req.Equal(http.StatusOK, resp.StatusCode)
	})

	t.Run("logout closes it again", func(t *testing.T) {
		resp := postForm(t, client, ts.URL+"/logout", nil)
		req.Contains(resp.Header.Get("Location"), "/login?message=")

		resp = get(t, client, ts.URL+"/")
		req.Equal("/login", resp.Header.Get("Location"))
	})
}

func TestRoomLifecycle(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	client := newClient(t)
	registerAndLogin(t, client, ts.URL, "alice", "Alice", "pw1")

	t.Run("room creation redirects to the new room", func(t *testing.T) {
		resp := postForm(t, client, ts.URL+"/chat/new", url.Values{"name": {"general"}})
		req.Equal(http.StatusSeeOther, resp.StatusCode)
		req.Equal("/chat/1", resp.Header.Get("Location"))
	})

	t.Run("room page renders", func(t *testing.T) {
		resp := get(t, client, ts.URL+"/chat/1")
		req.Equal(http.StatusOK, resp.StatusCode)
	})

	t.Run("absent room is a 404", func(t *testing.T) {
		resp := get(t, client, ts.URL+"/chat/99")
		req.Equal(http.StatusNotFound, resp.StatusCode)
	})

	t.Run("room listing carries id and name", func(t *testing.T) {
		resp := get(t, client, ts.URL+"/rooms")
		req.Equal(http.StatusOK, resp.StatusCode)

		var rooms []map[string]any
		req.NoError(json.NewDecoder(resp.Body).Decode(&rooms))
		req.Len(rooms, 1)
		req.EqualValues(1, rooms[0]["id"])
		req.Equal("general", rooms[0]["name"])
	})
}

func TestPostingAndPolling(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	client := newClient(t)
	registerAndLogin(t, client, ts.URL, "alice", "Alice", "pw1")
	postForm(t, client, ts.URL+"/chat/new", url.Values{"name": {"general"}})

	post := func(text string) *http.Response {
		resp, err := client.Post(ts.URL+"/chat/1", "text/plain", strings.NewReader(text))
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = resp.Body.Close()
		})
		return resp
	}

	for _, text := range []string{"one", "two", "three", "four", "five"} {
		resp := post(text)
		req.Equal(http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		req.NoError(err)
		req.Empty(body)
	}

	t.Run("since returns strictly newer messages with the wire shape", func(t *testing.T) {
		resp := get(t, client, ts.URL+"/chat/1/since/3")
		req.Equal(http.StatusOK, resp.StatusCode)
		req.Contains(resp.Header.Get("Content-Type"), "application/json")

		var messages []map[string]any
		req.NoError(json.NewDecoder(resp.Body).Decode(&messages))
		req.Len(messages, 2)

		first := messages[0]
		req.EqualValues(4, first["id"])
		req.Equal("four", first["text"])

		author, ok := first["author"].(map[string]any)
		req.True(ok)
		req.Equal("alice", author["login"])
		req.Equal("Alice", author["name"])

		stamp, ok := first["time"].(map[string]any)
		req.True(ok)
		for _, key := range []string{"year", "month", "day", "hour", "minute", "second"} {
			req.Contains(stamp, key)
		}
	})

	t.Run("caught-up poll returns an empty array", func(t *testing.T) {
		resp := get(t, client, ts.URL+"/chat/1/since/5")
		req.Equal(http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		req.NoError(err)
		req.Equal("[]", strings.TrimSpace(string(body)))
	})

	t.Run("non-positive last seen id is a 400", func(t *testing.T) {
		resp := get(t, client, ts.URL+"/chat/1/since/0")
		req.Equal(http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("absent room is a 404 for polling and posting", func(t *testing.T) {
		resp := get(t, client, ts.URL+"/chat/99/since/1")
		req.Equal(http.StatusNotFound, resp.StatusCode)

		postResp, err := client.Post(ts.URL+"/chat/99", "text/plain", strings.NewReader("hello"))
		req.NoError(err)
		defer postResp.Body.Close()
		req.Equal(http.StatusNotFound, postResp.StatusCode)
	})

	t.Run("full list bootstraps a fresh client", func(t *testing.T) {
		resp := get(t, client, ts.URL+"/chat/1/messages")
		req.Equal(http.StatusOK, resp.StatusCode)

		var messages []map[string]any
		req.NoError(json.NewDecoder(resp.Body).Decode(&messages))
		req.Len(messages, 5)
		req.EqualValues(1, messages[0]["id"])
	})

	t.Run("censored words are masked end to end", func(t *testing.T) {
		post("watch the badger")

		resp := get(t, client, ts.URL+"/chat/1/since/5")
		var messages []map[string]any
		req.NoError(json.NewDecoder(resp.Body).Decode(&messages))
		req.Len(messages, 1)
		req.Equal("watch the ******", messages[0]["text"])
	})
}

func TestSearchPage(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	client := newClient(t)
	registerAndLogin(t, client, ts.URL, "alice", "Alice", "pw1")
	postForm(t, client, ts.URL+"/chat/new", url.Values{"name": {"general"}})

	resp, err := client.Post(ts.URL+"/chat/1", "text/plain", strings.NewReader("the invoice is overdue"))
	req.NoError(err)
	resp.Body.Close()

	resp = get(t, client, ts.URL+"/search?q=invoice")
	req.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	req.NoError(err)
	req.Contains(string(body), "the invoice is overdue")
}
