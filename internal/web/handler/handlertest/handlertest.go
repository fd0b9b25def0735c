// Package handlertest holds the fixtures shared by the web handler tests.
package handlertest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/config"
	"github.com/render-shortcodes/render/internal/db/models"
	"github.com/render-shortcodes/render/internal/render"
	"github.com/render-shortcodes/render/internal/shortcode"
	"github.com/render-shortcodes/render/internal/web/session"
)

// Password is the password of the fixture users.
const Password = "secret"

// Views is a Fiber views engine recording the last rendered template.
// It writes the "error" or "Error" string of the data when set, the template name otherwise.
type Views struct {
	mu   sync.Mutex
	name string
	data fiber.Map
}

// Load implements fiber.Views.
func (v *Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data any, _ ...string) error {
	m, _ := data.(fiber.Map)

	v.mu.Lock()
	v.name = name
	v.data = m
	v.mu.Unlock()

	for _, key := range []string{"error", "Error"} {
		if msg, ok := m[key].(string); ok && msg != "" {
			_, _ = io.WriteString(w, msg)
			return nil
		}
	}

	_, _ = io.WriteString(w, name)

	return nil
}

// Last returns the last rendered template and its data.
func (v *Views) Last() (string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.name, v.data
}

// Env is a database with an administrator and an editor, a session store and
// the shortcode library.
type Env struct {
	DB     *gorm.DB
	Config *config.Config
	Auth   *auth.Service
	Render *render.Render
	Admin  *models.User
	Editor *models.User
}

var (
	once   sync.Once
	shared *Env
)

// Setup returns the environment of the test binary. The shortcode library can
// only be built once per process, so every test shares it.
func Setup(t testing.TB) *Env {
	t.Helper()

	once.Do(func() {
		shared = build(t)
	})

	require.NotNil(t, shared, "handler test environment failed to build")

	return shared
}

func build(t testing.TB) *Env {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Option{}, &models.Session{},
		&models.Role{}, &models.Permission{}, &models.RolePermission{}, &models.User{},
	))

	session.Init(session.NewGormStorage(db))

	service := auth.NewService(db)

	adminRole, err := service.EnsureRole(auth.RoleAdministrator, "Administrator", auth.PermManageOptions, auth.PermEditPosts)
	require.NoError(t, err)

	editorRole, err := service.EnsureRole(auth.RoleEditor, "Editor", auth.PermEditPosts)
	require.NoError(t, err)

	local := auth.NewLocalProvider(db)

	admin, err := local.CreateUser("admin", "admin@example.com", Password, "Site Admin", adminRole.ID)
	require.NoError(t, err)

	editor, err := local.CreateUser("editor", "editor@example.com", Password, "Ed Itor", editorRole.ID)
	require.NoError(t, err)

	require.NoError(t, db.Preload("Role").First(admin, admin.ID).Error)
	require.NoError(t, db.Preload("Role").First(editor, editor.ID).Error)

	cfg := &config.Config{
		Title:   "Render Test",
		Version: "1.2.3",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Hour},
		},
		License: config.License{ItemName: "Render", Timeout: time.Second},
	}

	r, err := render.New(db, render.Options{
		Version: cfg.Version,
		Site: shortcode.Site{
			Title:      cfg.Title,
			URL:        cfg.Webserver.URL,
			AdminEmail: admin.Email,
			Version:    cfg.Version,
		},
	})
	require.NoError(t, err)

	return &Env{DB: db, Config: cfg, Auth: service, Render: r, Admin: admin, Editor: editor}
}

// Reset deletes every stored option.
func (e *Env) Reset(t testing.TB) {
	t.Helper()

	require.NoError(t, e.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Option{}).Error)
}

// App returns a Fiber app rendering with views.
func (e *Env) App(views *Views) *fiber.App {
	return fiber.New(fiber.Config{Views: views})
}

// Login stores a session for user and returns its id.
func (e *Env) Login(t testing.TB, user *models.User) string {
	t.Helper()

	id, err := session.GenerateSessionID()
	require.NoError(t, err)

	data := session.Data{User: session.UserFromModel(user)}
	require.NoError(t, data.Write(id, time.Hour))

	return id
}

// Request builds a request carrying the session cookie sessionID, if any.
// A non nil form is sent url encoded.
func Request(method, target string, form url.Values, sessionID string) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}

	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	return req
}

// JSONRequest builds a JSON request carrying the session cookie sessionID, if any.
func JSONRequest(method, target, body, sessionID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	return req
}
