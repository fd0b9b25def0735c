package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// AdminPath is the prefix of the admin pages.
	AdminPath = RootPath + "admin"

	// APIPath is the prefix of the editor API.
	APIPath = RootPath + "api"

	// HomePath is where logged in users land.
	HomePath = AdminPath + "/shortcodes"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
