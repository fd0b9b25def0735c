package core

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/render-shortcodes/render/internal/shortcode"
)

func registry(t *testing.T) *shortcode.Registry {
	t.Helper()

	r := shortcode.NewRegistry()
	for _, group := range [][]shortcode.Shortcode{Design(), Post(), Site(), Time(), User(), Visibility(), Query()} {
		for _, sc := range group {
			require.NoError(t, r.Register(sc), sc.Code)
		}
	}

	return r
}

func TestDefinitions(t *testing.T) {
	r := registry(t)

	assert.Equal(t, []string{"design", "post", "site", "time", "user", "visibility", "query"}, r.Categories())

	for _, sc := range r.All() {
		assert.Equal(t, Source, sc.Source, sc.Code)
		assert.NotEmpty(t, sc.Title, sc.Code)
		assert.NotEmpty(t, sc.Description, sc.Code)
	}
}

func TestRendering(t *testing.T) {
	r := registry(t)

	published := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	ctx := &shortcode.Context{
		Site:  shortcode.Site{Title: "My <Site>", URL: "https://example.com"},
		User:  &shortcode.User{ID: 1, Username: "ann", DisplayName: "Ann", Role: "editor"},
		Post:  &shortcode.Post{ID: 42, Title: "Hello", Published: published, URL: "https://example.com/hello"},
		Query: url.Values{"ref": {"news"}},
		Now:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		content string
		want    string
	}{
		{`[render_site_title]`, "My &lt;Site&gt;"},
		{`[render_post_id]`, "42"},
		{`[render_post_published_date]`, "March 05, 2024"},
		{`[render_post_published_date format="%Y-%m-%d"]`, "2024-03-05"},
		{`[render_post_link]`, `<a href="https://example.com/hello">Hello</a>`},
		{`[render_current_year]`, "2026"},
		{`[render_age date="2000-06-02"]`, "25"},
		{`[render_age date="2000-06-01"]`, "26"},
		{`[render_age date="bogus"]`, ""},
		{`[render_current_user_display_name]`, "Ann"},
		{`[render_logged_in]in[/render_logged_in][render_logged_out]out[/render_logged_out]`, "in"},
		{`[render_hide_for_roles roles="admin, Editor"]x[/render_hide_for_roles]`, ""},
		{`[render_hide_for_roles roles="admin"]x[/render_hide_for_roles]`, "x"},
		{`[render_query_var name="ref"]`, "news"},
		{`[render_query_var name="utm" default="direct"]`, "direct"},
		{`[render_if_query_var name="ref" value="news"]yes[/render_if_query_var]`, "yes"},
		{`[render_if_query_var name="ref" value="other"]yes[/render_if_query_var]`, ""},
		{`[render_column last="1"]c[/render_column]`, `<div class="render-column render-column-one-half render-column-last">c</div>`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Expand(ctx, tt.content), tt.content)
	}
}

func TestVisitor(t *testing.T) {
	r := registry(t)
	ctx := &shortcode.Context{}

	assert.Equal(t, "out", r.Expand(ctx, `[render_logged_in]in[/render_logged_in][render_logged_out]out[/render_logged_out]`))
	assert.Equal(t, "friend", r.Expand(ctx, `[render_current_user_login fallback="friend"]`))
	assert.Empty(t, r.Expand(ctx, `[render_post_title]`))
}
