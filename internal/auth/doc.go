// Package auth provides authentication and authorization for the admin service.
//
// Users log in against the local database, passwords are hashed with Argon2id.
// Every user has one role and roles carry permissions. The admin pages
// require PermManageOptions, the editor API requires PermEditPosts.
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	app.Get("/admin/shortcodes",
//	    auth.RequirePermission(authService, auth.PermManageOptions),
//	    handler,
//	)
package auth
