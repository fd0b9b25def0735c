package login

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/render-shortcodes/render/internal/db/models"
	"github.com/render-shortcodes/render/internal/web/handler"
	"github.com/render-shortcodes/render/internal/web/handler/handlertest"
	"github.com/render-shortcodes/render/internal/web/session"
)

func setup(t *testing.T, devMode bool) (*handlertest.Env, *fiber.App, *handlertest.Views) {
	t.Helper()

	env := handlertest.Setup(t)
	env.Config.DevMode = devMode
	t.Cleanup(func() { env.Config.DevMode = false })

	views := &handlertest.Views{}
	app := env.App(views)

	var s Service
	require.NoError(t, s.Init(app, env.Config, env.DB, env.Auth, env.Render))

	return env, app, views
}

func post(t *testing.T, app *fiber.App, form url.Values) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(handlertest.Request(fiber.MethodPost, Path, form, ""), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}

	return nil
}

func TestInitNil(t *testing.T) {
	var s Service
	require.Error(t, s.Init(nil, nil, nil, nil, nil))
}

func TestGet(t *testing.T) {
	_, app, views := setup(t, false)

	resp, err := app.Test(handlertest.Request(fiber.MethodGet, Path+"?redirect_to=/admin/settings", nil, ""), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	name, data := views.Last()
	assert.Equal(t, TemplateName, name)
	assert.Equal(t, "/admin/settings", data["redirect_to"])
	assert.NotEmpty(t, data["Styles"])
}

func TestPostSuccess(t *testing.T) {
	tests := []struct {
		name       string
		devMode    bool
		redirectTo string
		wantTarget string
		wantSecure bool
	}{
		{name: "secure cookie", wantTarget: handler.HomePath, wantSecure: true},
		{name: "dev mode", devMode: true, wantTarget: handler.HomePath},
		{name: "local redirect", redirectTo: "/admin/settings", wantTarget: "/admin/settings", wantSecure: true},
		{name: "foreign redirect", redirectTo: "//evil.example.com/", wantTarget: handler.HomePath, wantSecure: true},
		{name: "absolute redirect", redirectTo: "https://evil.example.com/", wantTarget: handler.HomePath, wantSecure: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, app, _ := setup(t, tt.devMode)

			form := url.Values{
				"username":    {env.Admin.Username},
				"password":    {handlertest.Password},
				"redirect_to": {tt.redirectTo},
			}

			resp, _ := post(t, app, form)
			require.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, tt.wantTarget, resp.Header.Get(fiber.HeaderLocation))

			cookie := sessionCookie(resp)
			require.NotNil(t, cookie)
			assert.Equal(t, tt.wantSecure, cookie.Secure)
			assert.True(t, cookie.HttpOnly)

			data := new(session.Data)
			require.NoError(t, data.Read(cookie.Value))
			assert.Equal(t, env.Admin.ID, data.User.ID)
			assert.Equal(t, "administrator", data.User.Role)
		})
	}
}

func TestPostFailures(t *testing.T) {
	env, app, _ := setup(t, false)

	disabledUser := &models.User{
		Active:   false,
		Username: "gone",
		Email:    "gone@example.com",
		Password: models.HashPassword(handlertest.Password),
		RoleID:   env.Editor.RoleID,
	}
	require.NoError(t, env.DB.Create(disabledUser).Error)
	require.NoError(t, env.DB.Model(disabledUser).Update("active", false).Error)

	tests := []struct {
		name string
		form url.Values
		want error
	}{
		{name: "unknown user", form: url.Values{"username": {"nobody"}, "password": {"x"}}, want: ErrInvalidCredentials},
		{name: "wrong password", form: url.Values{"username": {"admin"}, "password": {"wrong"}}, want: ErrInvalidCredentials},
		{name: "disabled account", form: url.Values{"username": {"gone"}, "password": {handlertest.Password}}, want: ErrAccountDisabled},
		{name: "missing password", form: url.Values{"username": {"admin"}}, want: ErrInvalidFormData},
		{name: "blank username", form: url.Values{"username": {"   "}, "password": {"x"}}, want: ErrInvalidFormData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, app, tt.form)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want.Error(), body)
			assert.Nil(t, sessionCookie(resp))
		})
	}
}

func TestPostMalformedBody(t *testing.T) {
	_, app, _ := setup(t, false)

	req := handlertest.JSONRequest(fiber.MethodPost, Path, "{", "")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), ErrInvalidFormData.Error()))
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/admin/shortcodes?s=x", safeRedirect("/admin/shortcodes?s=x"))
	assert.Equal(t, handler.HomePath, safeRedirect(""))
	assert.Equal(t, handler.HomePath, safeRedirect("/\\evil.example.com"))
	assert.Equal(t, handler.HomePath, safeRedirect("javascript:alert(1)"))
}
