package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/render-shortcodes/render/internal/db/controller/disabled"
	controller "github.com/render-shortcodes/render/internal/db/controller/settings"
	"github.com/render-shortcodes/render/internal/web/handler/handlertest"
)

func setup(t *testing.T) (*handlertest.Env, *fiber.App) {
	t.Helper()

	env := handlertest.Setup(t)
	env.Reset(t)

	app := env.App(&handlertest.Views{})

	s := &Service{}
	require.NoError(t, s.Init(app, env.Config, env.DB, env.Auth, env.Render))

	return env, app
}

func decode[T any](t *testing.T, app *fiber.App, req *http.Request, wantStatus int) T {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, wantStatus, resp.StatusCode)

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func TestShortcodesRequireSession(t *testing.T) {
	_, app := setup(t)

	resp, err := app.Test(handlertest.Request(fiber.MethodGet, ShortcodesPath, nil, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestShortcodes(t *testing.T) {
	env, app := setup(t)

	_, err := disabled.Disable(env.DB, "render_box")
	require.NoError(t, err)

	data := decode[EditorData](t, app, handlertest.Request(fiber.MethodGet, ShortcodesPath, nil, env.Login(t, env.Editor)), fiber.StatusOK)
	assert.True(t, data.RenderVisual)

	codes := make([]string, 0, len(data.Shortcodes))
	for _, sc := range data.Shortcodes {
		codes = append(codes, sc.Code)
	}

	assert.Contains(t, codes, "render_button")
	assert.NotContains(t, codes, "render_box", "disabled shortcodes are hidden")
	assert.NotContains(t, codes, "render_site_version", "shortcodes without display are hidden")
	assert.Equal(t, "render_button", codes[0], "registration order is kept")

	require.NoError(t, controller.Save(env.DB, false, ""))

	data = decode[EditorData](t, app, handlertest.Request(fiber.MethodGet, ShortcodesPath, nil, env.Login(t, env.Admin)), fiber.StatusOK)
	assert.False(t, data.RenderVisual)
}

func TestRender(t *testing.T) {
	env, app := setup(t)
	sid := env.Login(t, env.Editor)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "site and user",
			body: `{"content":"<p>[render_site_title]</p> by [render_current_user_display_name]"}`,
			want: "Render Test by Ed Itor",
		},
		{
			name: "logged in content",
			body: `{"content":"[render_logged_in]hi[/render_logged_in][render_logged_out]bye[/render_logged_out]"}`,
			want: "hi",
		},
		{
			name: "post",
			body: `{"content":"[render_post_title]","post":{"id":7,"title":"Hello & welcome"}}`,
			want: "Hello &amp; welcome",
		},
		{
			name: "query",
			body: `{"content":"[render_query_var name=\"ref\"]","query":{"ref":"news"}}`,
			want: "news",
		},
		{
			name: "unknown code",
			body: `{"content":"[nothing here]"}`,
			want: "[nothing here]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := decode[RenderResponse](t, app, handlertest.JSONRequest(fiber.MethodPost, RenderPath, tt.body, sid), fiber.StatusOK)
			assert.Equal(t, tt.want, out.Content)
		})
	}
}

func TestRenderFrontAssets(t *testing.T) {
	env, app := setup(t)

	body := `{"content":"[render_site_title]"}`
	out := decode[RenderResponse](t, app, handlertest.JSONRequest(fiber.MethodPost, RenderPath, body, env.Login(t, env.Editor)), fiber.StatusOK)
	assert.Equal(t, []string{"/static/css/render.css?ver=1.2.3"}, out.Styles)
	assert.Equal(t, []string{"/static/js/render.js?ver=1.2.3"}, out.Scripts)
}

func TestRenderDisabled(t *testing.T) {
	env, app := setup(t)

	_, err := disabled.Disable(env.DB, "render_site_title")
	require.NoError(t, err)

	body := `{"content":"[render_site_title]"}`
	out := decode[RenderResponse](t, app, handlertest.JSONRequest(fiber.MethodPost, RenderPath, body, env.Login(t, env.Admin)), fiber.StatusOK)
	assert.Equal(t, "[render_site_title]", out.Content)
}

func TestRenderInvalid(t *testing.T) {
	env, app := setup(t)
	sid := env.Login(t, env.Editor)

	out := decode[ErrorResponse](t, app, handlertest.JSONRequest(fiber.MethodPost, RenderPath, `{"content":`, sid), fiber.StatusBadRequest)
	assert.NotEmpty(t, out.Error)

	big := `{"content":"` + strings.Repeat("a", MaxContentLength+1) + `"}`
	out = decode[ErrorResponse](t, app, handlertest.JSONRequest(fiber.MethodPost, RenderPath, big, sid), fiber.StatusRequestEntityTooLarge)
	assert.NotEmpty(t, out.Error)
}
