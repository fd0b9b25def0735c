package shortcodes

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/render-shortcodes/render/internal/db/controller/disabled"
	"github.com/render-shortcodes/render/internal/db/controller/option"
	"github.com/render-shortcodes/render/internal/listview"
	"github.com/render-shortcodes/render/internal/web/handler/handlertest"
)

func setup(t *testing.T) (*handlertest.Env, *fiber.App, *handlertest.Views) {
	t.Helper()

	env := handlertest.Setup(t)
	env.Reset(t)

	views := &handlertest.Views{}
	app := env.App(views)

	s := &Service{}
	require.NoError(t, s.Init(app, env.Config, env.DB, env.Auth, env.Render))

	return env, app, views
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestInitNil(t *testing.T) {
	s := &Service{}
	require.Error(t, s.Init(nil, nil, nil, nil, nil))
}

func TestListRequiresPermission(t *testing.T) {
	env, app, _ := setup(t)

	resp := do(t, app, handlertest.Request(fiber.MethodGet, Path, nil, ""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, handlertest.Request(fiber.MethodGet, Path, nil, env.Login(t, env.Editor)))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	form := url.Values{"action": {ActionDisable}, "shortcodes[]": {"render_button"}}
	resp = do(t, app, handlertest.Request(fiber.MethodPost, BulkPath, form, env.Login(t, env.Editor)))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	set, err := disabled.Load(env.DB)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestList(t *testing.T) {
	env, app, views := setup(t)

	_, err := disabled.Disable(env.DB, "render_box")
	require.NoError(t, err)

	target := Path + "?category=design&orderby=code&order=desc"
	resp := do(t, app, handlertest.Request(fiber.MethodGet, target, nil, env.Login(t, env.Admin)))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	name, data := views.Last()
	assert.Equal(t, TemplateName, name)

	table, ok := data["Table"].(listview.Page[Row])
	require.True(t, ok)
	assert.Equal(t, []string{"render_column", "render_button", "render_box"}, codes(table.Items))
	assert.True(t, table.Items[2].Disabled)
	assert.False(t, table.Items[0].Disabled)

	params, ok := data["Params"].(Params)
	require.True(t, ok)
	assert.Equal(t, "design", params.Category)
	assert.Equal(t, listview.DefaultPageSize, params.PerPage)

	assert.NotNil(t, data["CurrentUser"])
	assert.NotEmpty(t, data["Styles"])
	assert.Equal(t, NoItems, data["NoItems"])
}

func TestListMalformedParams(t *testing.T) {
	env, app, views := setup(t)

	target := Path + "?paged=abc&orderby=1%3Bdrop&order=up&category=0"
	resp := do(t, app, handlertest.Request(fiber.MethodGet, target, nil, env.Login(t, env.Admin)))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, data := views.Last()
	params := data["Params"].(Params)
	assert.Equal(t, Params{OrderBy: "name", Order: asc, Page: 1, PerPage: listview.DefaultPageSize}, params)

	table := data["Table"].(listview.Page[Row])
	assert.Equal(t, env.Render.Registry().Len(), table.TotalItems)
	assert.Len(t, table.Items, listview.DefaultPageSize)
}

func TestListNeverMutates(t *testing.T) {
	env, app, _ := setup(t)

	_, err := disabled.Disable(env.DB, "render_box")
	require.NoError(t, err)

	for _, target := range []string{
		Path + "?action=disable&shortcodes[]=render_button",
		Path + "?action=enable&shortcodes=render_box",
		Path + "?action2=disable&shortcodes[]=render_column&paged=2",
	} {
		resp := do(t, app, handlertest.Request(fiber.MethodGet, target, nil, env.Login(t, env.Admin)))
		require.Equal(t, fiber.StatusOK, resp.StatusCode, target)
	}

	set, err := disabled.Load(env.DB)
	require.NoError(t, err)
	assert.Equal(t, disabled.Set{"render_box"}, set)
}

func TestBulkRoundTrip(t *testing.T) {
	env, app, _ := setup(t)
	sid := env.Login(t, env.Admin)

	_, err := disabled.Disable(env.DB, "render_age")
	require.NoError(t, err)

	before, err := disabled.Load(env.DB)
	require.NoError(t, err)

	form := url.Values{
		"action":       {ActionDisable},
		"shortcodes[]": {"render_button", "render_box", "not_registered"},
		"category":     {"design"},
	}

	resp := do(t, app, handlertest.Request(fiber.MethodPost, BulkPath+"?paged=2", form, sid))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, Path+"?category=design&paged=2&done=disable&updated=2", resp.Header.Get(fiber.HeaderLocation))

	set, err := disabled.Load(env.DB)
	require.NoError(t, err)
	assert.Equal(t, disabled.Set{"render_age", "render_button", "render_box"}, set)

	// the bottom selector is used when the top one is left at -1
	form = url.Values{
		"action":       {"-1"},
		"action2":      {ActionEnable},
		"shortcodes[]": {"render_button", "render_box"},
	}

	resp = do(t, app, handlertest.Request(fiber.MethodPost, BulkPath, form, sid))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	after, err := disabled.Load(env.DB)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestBulkRowAction(t *testing.T) {
	env, app, _ := setup(t)

	form := url.Values{"action": {ActionDisable}, "shortcodes": {"caption"}}
	resp := do(t, app, handlertest.Request(fiber.MethodPost, BulkPath, form, env.Login(t, env.Admin)))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	set, err := disabled.Load(env.DB)
	require.NoError(t, err)
	assert.Equal(t, disabled.Set{"caption"}, set)

	active, err := env.Render.Active()
	require.NoError(t, err)

	_, ok := active.Get("caption")
	assert.False(t, ok)
}

func TestBulkInvalid(t *testing.T) {
	env, app, _ := setup(t)
	sid := env.Login(t, env.Admin)

	tests := []struct {
		name string
		form url.Values
	}{
		{name: "unknown action", form: url.Values{"action": {"delete"}, "shortcodes[]": {"render_box"}}},
		{name: "no action", form: url.Values{"shortcodes[]": {"render_box"}}},
		{name: "no shortcodes", form: url.Values{"action": {ActionDisable}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, handlertest.Request(fiber.MethodPost, BulkPath, tt.form, sid))
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}

	set, err := disabled.Load(env.DB)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestScreenOptions(t *testing.T) {
	env, app, views := setup(t)
	sid := env.Login(t, env.Admin)

	form := url.Values{"shortcodes_per_page": {"5"}}
	resp := do(t, app, handlertest.Request(fiber.MethodPost, ScreenOptionsPath, form, sid))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get(fiber.HeaderLocation))

	value, err := option.GetString(env.DB, option.UserKey(env.Admin.ID, PerPageOption), "")
	require.NoError(t, err)
	assert.Equal(t, "5", value)

	resp = do(t, app, handlertest.Request(fiber.MethodGet, Path+"?paged=2", nil, sid))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, data := views.Last()
	table := data["Table"].(listview.Page[Row])
	assert.Len(t, table.Items, 5)
	assert.Equal(t, 5, table.PageSize)
	assert.Equal(t, 2, table.CurrentPage)

	for _, bad := range []string{"0", "1000", "many"} {
		form = url.Values{"shortcodes_per_page": {bad}}
		resp = do(t, app, handlertest.Request(fiber.MethodPost, ScreenOptionsPath, form, sid))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, bad)
	}

	value, err = option.GetString(env.DB, option.UserKey(env.Admin.ID, PerPageOption), "")
	require.NoError(t, err)
	assert.Equal(t, "5", value)
}
