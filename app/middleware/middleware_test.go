package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/logging"
	"yatube/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "text", "info")
	require.NoError(t, err)

	handler := RequestID(Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	out := buf.String()
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/test")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "request_id=abc")
	assert.Equal(t, "abc", rw.Header().Get(RequestIDHeader))
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest("GET", "/", nil))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rw.Header().Get(RequestIDHeader))
}

func TestRecoverer(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	t.Run("plain 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		Recoverer(logging.Discard(), nil)(panicking).ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error\n", w.Body.String())
	})

	t.Run("fallback page", func(t *testing.T) {
		fallback := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("core/500"))
		})
		w := httptest.NewRecorder()
		Recoverer(logging.Discard(), fallback)(panicking).ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "core/500", w.Body.String())
	})
}

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedHeader string
	}{
		{name: "API route", path: "/api/test", expectedHeader: "application/json"},
		{name: "Non-API route", path: "/test", expectedHeader: ""},
		{name: "Short path", path: "/", expectedHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
			assert.Equal(t, tt.expectedHeader, w.Header().Get("Content-Type"))
		})
	}
}

type staticProvider struct{ user *models.User }

func (p staticProvider) CurrentUser(r *http.Request) (*models.User, bool) {
	return p.user, p.user != nil
}

func TestAuthenticateAndRequireLogin(t *testing.T) {
	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := auth.UserFromContext(r.Context())
		w.Write([]byte("hello " + user.Username))
	})

	t.Run("anonymous is redirected with next", func(t *testing.T) {
		handler := Authenticate(staticProvider{})(RequireLogin("/auth/login/")(protected))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/posts/1/edit/", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/auth/login/?next=/posts/1/edit/", w.Header().Get("Location"))
	})

	t.Run("authenticated passes", func(t *testing.T) {
		handler := Authenticate(staticProvider{user: &models.User{ID: 1, Username: "auth"}})(RequireLogin("/auth/login/")(protected))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/create/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello auth", w.Body.String())
	})
}

func TestLoginRedirect(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=/create/", LoginRedirect("/auth/login/", "/create/"))
	assert.Equal(t, "/auth/login/?next=/follow/%3Fpage%3D2", LoginRedirect("/auth/login/", "/follow/?page=2"))
}

func TestCachePage(t *testing.T) {
	c, err := cache.New(1<<20, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	calls := 0
	content := "first"
	handler := CachePage(c, "index")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(content + " " + strconv.Itoa(calls)))
	}))

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		return w
	}

	first := get("/")
	assert.Equal(t, "first 1", first.Body.String())

	content = "second"
	cached := get("/")
	assert.Equal(t, "first 1", cached.Body.String())
	assert.Equal(t, "HIT", cached.Header().Get("X-Cache"))
	assert.Equal(t, "text/html; charset=utf-8", cached.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls)

	other := get("/?page=2")
	assert.Equal(t, "second 2", other.Body.String(), "each URI is cached separately")

	c.Clear()
	assert.Equal(t, "second 3", get("/").Body.String())
}

func TestCachePageSkipsErrors(t *testing.T) {
	c, err := cache.New(1<<20, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	calls := 0
	handler := CachePage(c, "index")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	}
	assert.Equal(t, 2, calls)
}
