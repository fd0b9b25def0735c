package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Shortcodes", "shortcodes", "list")

	assert.Equal(t, "Shortcodes", ctx.PageTitle)
	assert.Equal(t, "shortcodes", ctx.ActiveSection)
	assert.Equal(t, "list", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
	assert.Equal(t, Menu, ctx.Menu)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Settings", "settings", "settings").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Settings", "/admin/settings", true)

	assert.Len(t, ctx.Breadcrumbs, 2)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.False(t, ctx.Breadcrumbs[0].Active)
	assert.Equal(t, "/admin/settings", ctx.Breadcrumbs[1].URL)
	assert.True(t, ctx.Breadcrumbs[1].Active)
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Settings", "settings", "settings")

	assert.True(t, ctx.IsActive("settings", "settings"))
	assert.False(t, ctx.IsActive("shortcodes", "settings"))
	assert.False(t, ctx.IsActive("settings", "list"))
	assert.True(t, ctx.IsSectionActive("settings"))
	assert.False(t, ctx.IsSectionActive("shortcodes"))
}

func TestMenu(t *testing.T) {
	for _, item := range Menu {
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.URL)
	}
}
