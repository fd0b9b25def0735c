package core

import (
	"strings"

	"github.com/render-shortcodes/render/internal/shortcode"
)

// Visibility returns the shortcodes that show or hide content.
func Visibility() []shortcode.Shortcode {
	return []shortcode.Shortcode{
		{
			Code: "render_logged_in",
			Func: func(ctx *shortcode.Context, _ shortcode.Atts, content string) string {
				if ctx.LoggedIn() {
					return content
				}

				return ""
			},
			Title:       "Logged In",
			Description: "Shows the content to logged in users only.",
			Source:      Source,
			Category:    "visibility",
			Wrapping:    true,
		},
		{
			Code: "render_logged_out",
			Func: func(ctx *shortcode.Context, _ shortcode.Atts, content string) string {
				if ctx.LoggedIn() {
					return ""
				}

				return content
			},
			Title:       "Logged Out",
			Description: "Shows the content to visitors only.",
			Source:      Source,
			Category:    "visibility",
			Wrapping:    true,
		},
		{
			Code:        "render_hide_for_roles",
			Func:        hideForRoles,
			Title:       "Hide For Roles",
			Description: "Hides the content from users having one of the roles.",
			Source:      Source,
			Category:    "visibility",
			Atts: []shortcode.Attribute{
				{Name: "roles", Label: "Roles", Description: "Comma separated role names", Required: true},
			},
			Wrapping: true,
		},
	}
}

func hideForRoles(ctx *shortcode.Context, atts shortcode.Atts, content string) string {
	if !ctx.LoggedIn() {
		return content
	}

	for _, role := range strings.Split(atts.Get("roles", ""), ",") {
		if strings.EqualFold(strings.TrimSpace(role), ctx.User.Role) {
			return ""
		}
	}

	return content
}
