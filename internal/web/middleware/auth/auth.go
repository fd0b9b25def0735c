package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	rauth "github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/web/handler"
	"github.com/render-shortcodes/render/internal/web/handler/login"
	"github.com/render-shortcodes/render/internal/web/handler/logout"
	"github.com/render-shortcodes/render/internal/web/session"
)

// StaticPath is the prefix of the static files.
const StaticPath = "/static"

// New returns the authentication middleware. Requests below the public path
// prefixes pass without a session.
func New(public ...string) fiber.Handler {
	public = append([]string{StaticPath, logout.Path}, public...)

	return func(c *fiber.Ctx) error {
		path := strings.ToLower(c.Path())

		for _, prefix := range public {
			if prefix != "" && strings.HasPrefix(path, strings.ToLower(prefix)) {
				return c.Next()
			}
		}

		isLoginPage := IsLoginPage(c)

		sessData := new(session.Data)

		loginCookie := c.Cookies(session.CookieName)
		if loginCookie != "" {
			if err := sessData.Read(loginCookie); err != nil {
				sessData = new(session.Data)
			}
		}

		if sessData.User.ID == 0 {
			// If we're already on the login page, don't redirect (would cause loop)
			if isLoginPage {
				return c.Next()
			}

			if IsAPI(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not logged in"})
			}

			return c.Redirect(login.Path + "?redirect_to=" + url.QueryEscape(c.OriginalURL()))
		}

		// Add the current user to locals for template access
		c.Locals(rauth.LocalsUser, sessData.User)

		if isLoginPage {
			return c.Redirect(handler.HomePath)
		}

		return c.Next()
	}
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), login.Path)
}

// IsAPI checks if the current request is for the editor API.
func IsAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), handler.APIPath+"/")
}
