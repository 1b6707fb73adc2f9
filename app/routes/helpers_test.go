package routes

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/logging"
	"yatube/app/media"
	"yatube/app/models"
	"yatube/app/repositories"
	"yatube/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// testApp is a fully wired router over in-memory Badger.
type testApp struct {
	t        *testing.T
	ctx      context.Context
	router   *mux.Router
	store    *repositories.Store
	media    media.Store
	cache    *cache.PageCache
	sessions *auth.SessionManager

	mu       sync.Mutex
	template string
	data     views.Data
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repositories.OpenBadger("")
	require.NoError(t, err)
	store := repositories.NewBadgerStore(db)
	t.Cleanup(func() { store.Close() })

	pageCache, err := cache.New(1<<20, 0)
	require.NoError(t, err)
	t.Cleanup(pageCache.Close)

	renderer, err := views.New()
	require.NoError(t, err)

	app := &testApp{
		t:        t,
		ctx:      context.Background(),
		store:    store,
		media:    media.NewBadgerStore(db),
		cache:    pageCache,
		sessions: auth.NewSessionManager("test-secret", time.Hour, store.Users),
	}
	renderer.Observe(func(name string, data views.Data) {
		app.mu.Lock()
		defer app.mu.Unlock()
		app.template, app.data = name, data
	})

	app.router = SetupRoutes(Deps{
		Store:    store,
		Media:    app.media,
		Cache:    pageCache,
		Sessions: app.sessions,
		Renderer: renderer,
		Log:      logging.Discard(),
		PageSize: 10,
	})
	return app
}

// rendered returns the last template name and its data.
func (a *testApp) rendered() (string, views.Data) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.template, a.data
}

func (a *testApp) user(username string) *models.User {
	a.t.Helper()
	user := &models.User{Username: username, PasswordHash: "unused"}
	user.BeforeCreate()
	require.NoError(a.t, a.store.Users.Create(a.ctx, user))
	return user
}

func (a *testApp) group(slug string) *models.Group {
	a.t.Helper()
	group := &models.Group{Title: "Группа " + slug, Slug: slug, Description: "Тестовое описание"}
	require.NoError(a.t, a.store.Groups.Create(a.ctx, group))
	return group
}

func (a *testApp) post(author *models.User, group *models.Group, text string) *models.Post {
	a.t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID}
	post.SetGroup(group)
	require.NoError(a.t, a.store.Posts.Create(a.ctx, post))
	return post
}

func (a *testApp) countPosts(filter repositories.PostFilter) int {
	a.t.Helper()
	n, err := a.store.Posts.Count(a.ctx, filter)
	require.NoError(a.t, err)
	return n
}

// do sends a request as user, or anonymously when user is nil.
func (a *testApp) do(req *http.Request, user *models.User) *httptest.ResponseRecorder {
	a.t.Helper()
	if user != nil {
		token, err := a.sessions.GenerateToken(user.ID)
		require.NoError(a.t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, user *models.User) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), user)
}

func (a *testApp) postForm(path string, values url.Values, user *models.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, user)
}

func (a *testApp) postMultipart(path string, fields map[string]string, filename string, file []byte, user *models.User) *httptest.ResponseRecorder {
	a.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(a.t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(a.t, err)
		_, err = io.Copy(part, bytes.NewReader(file))
		require.NoError(a.t, err)
	}
	require.NoError(a.t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.do(req, user)
}

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x00, 0x21, 0xf9, 0x04,
	0x01, 0x0a, 0x00, 0x01, 0x00, 0x2c, 0x00, 0x00,
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x02,
	0x02, 0x4c, 0x01, 0x00, 0x3b,
}
