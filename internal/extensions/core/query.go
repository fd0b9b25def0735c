package core

import (
	"html"

	"github.com/render-shortcodes/render/internal/shortcode"
)

// Query returns the shortcodes reading the request query.
func Query() []shortcode.Shortcode {
	return []shortcode.Shortcode{
		{
			Code: "render_query_var",
			Func: func(ctx *shortcode.Context, atts shortcode.Atts, _ string) string {
				if ctx == nil || ctx.Query == nil || !ctx.Query.Has(atts.Get("name", "")) {
					return html.EscapeString(atts.Get("default", ""))
				}

				return html.EscapeString(ctx.Query.Get(atts.Get("name", "")))
			},
			Title:       "Query Variable",
			Description: "Outputs a variable of the request query string.",
			Source:      Source,
			Category:    "query",
			Atts: []shortcode.Attribute{
				{Name: "name", Label: "Name", Required: true},
				{Name: "default", Label: "Default"},
			},
			Example: `[render_query_var name="utm_source" default="direct"]`,
		},
		{
			Code: "render_if_query_var",
			Func: func(ctx *shortcode.Context, atts shortcode.Atts, content string) string {
				if ctx == nil || ctx.Query == nil {
					return ""
				}

				name := atts.Get("name", "")
				if !ctx.Query.Has(name) {
					return ""
				}

				if want, ok := atts["value"]; ok && ctx.Query.Get(name) != want {
					return ""
				}

				return content
			},
			Title:       "If Query Variable",
			Description: "Shows the content when the request query has the variable, optionally with the given value.",
			Source:      Source,
			Category:    "query",
			Atts: []shortcode.Attribute{
				{Name: "name", Label: "Name", Required: true},
				{Name: "value", Label: "Value"},
			},
			Wrapping: true,
		},
	}
}
