package auth

// Permission constants define the capabilities checked by the admin and API routes.
const (
	// PermManageOptions allows managing shortcodes and settings.
	PermManageOptions = "manage_options"
	// PermEditPosts allows using the editor endpoints: shortcode data and rendering.
	PermEditPosts = "edit_posts"
)

// Role names created at startup.
const (
	RoleAdministrator = "administrator"
	RoleEditor        = "editor"
)

// Descriptions of the permissions, stored alongside them.
var Descriptions = map[string]string{
	PermManageOptions: "Manage shortcodes, settings and the license",
	PermEditPosts:     "Use shortcodes in the editor",
}
