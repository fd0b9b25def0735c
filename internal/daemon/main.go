// Package daemon opens the database, seeds it and runs the web service and
// the scheduled jobs.
package daemon

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/config"
	"github.com/render-shortcodes/render/internal/db/dsn"
	"github.com/render-shortcodes/render/internal/db/models"
	"github.com/render-shortcodes/render/internal/license"
	"github.com/render-shortcodes/render/internal/render"
	"github.com/render-shortcodes/render/internal/shortcode"
	"github.com/render-shortcodes/render/internal/web"
	"github.com/render-shortcodes/render/internal/web/handler/admin/settings"
	"github.com/render-shortcodes/render/internal/web/session"
)

const (
	sessionTable      = "sessions"
	sessionGCSchedule = "@hourly"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
	jobs       []*cron.Cron
}

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dsn.Dialector(cfg), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(
		&models.Option{},
		&models.Session{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.User{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// sessionStorage returns the fiber session storage for the configured engine.
// SQLite keeps the sessions in the gorm sessions table, cleaned by a cron job.
func sessionStorage(cfg *config.Config, db *gorm.DB) (fiber.Storage, *cron.Cron, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         sessionTable,
		}), nil, nil
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         sessionTable,
		}), nil, nil
	}

	storage := session.NewGormStorage(db)

	gc := cron.New()
	if _, err := gc.AddFunc(sessionGCSchedule, func() {
		n, err := storage.GC()
		if err != nil {
			log.Error().Err(err).Msg("session cleanup failed")
			return
		}

		log.Debug().Int64("removed", n).Msg("expired sessions removed")
	}); err != nil {
		return nil, nil, err
	}

	return storage, gc, nil
}

// Start starts the scheduled jobs and the web service. It returns after a
// termination signal shut the web service down.
func (d *Daemon) Start() error {
	for _, job := range d.jobs {
		job.Start()
	}

	defer func() {
		for _, job := range d.jobs {
			<-job.Stop().Done()
		}
	}()

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := Open(cfg)
	if err != nil {
		panic(err)
	}

	if err = seed(cfg, db); err != nil {
		panic(fmt.Errorf("failed to seed database: %w", err))
	}

	storage, gc, err := sessionStorage(cfg, db)
	if err != nil {
		panic(fmt.Errorf("failed to create session storage: %w", err))
	}

	session.Init(storage)

	r, err := render.New(db, render.Options{
		Version: cfg.Version,
		DevMode: cfg.DevMode,
		Site: shortcode.Site{
			Title:      cfg.Title,
			URL:        cfg.Webserver.URL,
			AdminEmail: cfg.Admin.Email,
			Language:   "en-US",
			Version:    cfg.Version,
		},
	})
	if err != nil {
		panic(fmt.Errorf("failed to initialize shortcodes: %w", err))
	}

	d := &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, r),
	}

	if gc != nil {
		d.jobs = append(d.jobs, gc)
	}

	// settings.Handler was initialized by web.New and holds the license store client
	check, err := license.NewScheduler(cfg.License.CheckSchedule, settings.Handler.Manager())
	if err != nil {
		panic(fmt.Errorf("invalid license check schedule: %w", err))
	}

	if check != nil {
		d.jobs = append(d.jobs, check)
	}

	return d
}
