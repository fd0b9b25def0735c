// Package auth provides authentication middleware for the web application.
//
// The middleware handles session validation and redirects unauthenticated
// requests. It also adds the current user to the request context for use in
// handlers and templates.
//
// The middleware performs the following tasks:
//   - Validates session cookies and redirects to login if invalid
//   - Answers unauthenticated editor API calls with 401 instead of a redirect
//   - Adds current user information to fiber.Locals for template access
//   - Allows public access to login, logout, static files and the given public paths
//   - Prevents redirect loops on authentication pages
//
// Usage:
//
//	app.Use(authmiddleware.New(cfg.Webserver.CheckAliveURI, "/metrics"))
//
// The middleware expects sessions to be managed by the session package
// and will redirect unauthenticated users to the login handler path.
package auth
