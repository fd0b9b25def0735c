package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/render-shortcodes/render/internal/web/session"
)

// LocalsUser is the fiber.Locals key holding the session user.
const LocalsUser = "CurrentUser"

// sessionUser reads the user of the session cookie, nil when there is none.
func sessionUser(c *fiber.Ctx) *session.Data {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return nil
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		log.Debug().Err(err).Msg("failed to read session")
		return nil
	}

	if sessionData.User.ID == 0 {
		return nil
	}

	return sessionData
}

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return RequireAnyPermission(authService, permission)
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionData := sessionUser(c)
		if sessionData == nil {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermission, err := authService.HasAnyPermission(sessionData.User.ID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Strs("permissions", permissions).
				Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", sessionData.User.ID).Strs("permissions", permissions).
				Msg("User lacks required permissions")

			return c.Status(fiber.StatusForbidden).SendString("Sorry, you are not allowed to access this page.")
		}

		c.Locals(LocalsUser, sessionData.User)

		return c.Next()
	}
}

// CurrentUser returns the session user stored by the middleware.
func CurrentUser(c *fiber.Ctx) (session.User, bool) {
	u, ok := c.Locals(LocalsUser).(session.User)
	return u, ok && u.ID > 0
}

// AddPermissionsToLocals is a Fiber middleware that adds user permissions to fiber.Locals.
// This allows templates to access permissions for conditional rendering.
func AddPermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionData := sessionUser(c)
		if sessionData == nil {
			return c.Next()
		}

		permissions, err := authService.GetUserPermissions(sessionData.User.ID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).
				Msg("Failed to get user permissions")

			return c.Next()
		}

		c.Locals(LocalsUser, sessionData.User)
		c.Locals("permissions", permissions)
		c.Locals("hasPermission", func(perm string) bool {
			for _, p := range permissions {
				if p == perm {
					return true
				}
			}

			return false
		})

		return c.Next()
	}
}
