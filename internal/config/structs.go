package config

import (
	"time"

	"github.com/render-shortcodes/render/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// License holds the software licensing store settings.
type License struct {
	StoreURL      string        // base url of the licensing store
	ItemName      string        // product name as known to the store
	Timeout       time.Duration // per request timeout
	CheckSchedule string        // cron spec for the periodic license check, empty disables it
}

// Admin holds the credentials of the bootstrap administrator.
type Admin struct {
	Username string
	Password string // generated and logged once when empty
	Email    string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Version   string
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	License   License
	Admin     Admin
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	CheckAliveURI  string  // liveness endpoint
	Session        Session // session settings
}
