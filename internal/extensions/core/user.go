package core

import (
	"html"

	"github.com/render-shortcodes/render/internal/shortcode"
)

// User returns the shortcodes reading the current user.
func User() []shortcode.Shortcode {
	field := func(get func(*shortcode.User) string) shortcode.Func {
		return func(ctx *shortcode.Context, atts shortcode.Atts, _ string) string {
			if !ctx.LoggedIn() {
				return html.EscapeString(atts.Get("fallback", ""))
			}

			return html.EscapeString(get(ctx.User))
		}
	}

	fallback := []shortcode.Attribute{{Name: "fallback", Label: "Fallback", Description: "Shown to visitors"}}

	return []shortcode.Shortcode{
		{
			Code:        "render_current_user_display_name",
			Func:        field(func(u *shortcode.User) string { return u.DisplayName }),
			Title:       "Current User Display Name",
			Description: "Outputs the display name of the current user.",
			Source:      Source,
			Category:    "user",
			Atts:        fallback,
		},
		{
			Code:        "render_current_user_login",
			Func:        field(func(u *shortcode.User) string { return u.Username }),
			Title:       "Current User Login",
			Description: "Outputs the login name of the current user.",
			Source:      Source,
			Category:    "user",
			Atts:        fallback,
		},
		{
			Code:        "render_current_user_email",
			Func:        field(func(u *shortcode.User) string { return u.Email }),
			Title:       "Current User Email",
			Description: "Outputs the email address of the current user.",
			Source:      Source,
			Category:    "user",
			Atts:        fallback,
		},
		{
			Code:        "render_current_user_role",
			Func:        field(func(u *shortcode.User) string { return u.Role }),
			Title:       "Current User Role",
			Description: "Outputs the role of the current user.",
			Source:      Source,
			Category:    "user",
			Atts:        fallback,
		},
	}
}
