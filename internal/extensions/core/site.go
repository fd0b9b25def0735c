package core

import (
	"html"

	"github.com/render-shortcodes/render/internal/shortcode"
)

// Site returns the shortcodes reading site information.
func Site() []shortcode.Shortcode {
	field := func(get func(shortcode.Site) string) shortcode.Func {
		return func(ctx *shortcode.Context, _ shortcode.Atts, _ string) string {
			if ctx == nil {
				return ""
			}

			return html.EscapeString(get(ctx.Site))
		}
	}

	return []shortcode.Shortcode{
		{
			Code:        "render_site_title",
			Func:        field(func(s shortcode.Site) string { return s.Title }),
			Title:       "Site Title",
			Description: "Outputs the title of the site.",
			Source:      Source,
			Category:    "site",
		},
		{
			Code:        "render_site_tagline",
			Func:        field(func(s shortcode.Site) string { return s.Tagline }),
			Title:       "Site Tagline",
			Description: "Outputs the tagline of the site.",
			Source:      Source,
			Category:    "site",
		},
		{
			Code:        "render_site_url",
			Func:        field(func(s shortcode.Site) string { return s.URL }),
			Title:       "Site URL",
			Description: "Outputs the URL of the site.",
			Source:      Source,
			Category:    "site",
		},
		{
			Code:        "render_site_admin_email",
			Func:        field(func(s shortcode.Site) string { return s.AdminEmail }),
			Title:       "Site Admin Email",
			Description: "Outputs the email address of the site administrator.",
			Source:      Source,
			Category:    "site",
		},
		{
			Code:        "render_site_language",
			Func:        field(func(s shortcode.Site) string { return s.Language }),
			Title:       "Site Language",
			Description: "Outputs the language of the site.",
			Source:      Source,
			Category:    "site",
		},
		{
			Code:        "render_site_version",
			Func:        field(func(s shortcode.Site) string { return s.Version }),
			Title:       "Site Version",
			Description: "Outputs the version the site runs.",
			Source:      Source,
			Category:    "site",
			NoDisplay:   true,
		},
	}
}
