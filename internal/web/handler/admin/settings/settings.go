// Package settings provides the settings page: the visual renderer toggle and
// the license key with its activation.
package settings

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/config"
	controller "github.com/render-shortcodes/render/internal/db/controller/settings"
	"github.com/render-shortcodes/render/internal/license"
	"github.com/render-shortcodes/render/internal/render"
	"github.com/render-shortcodes/render/internal/web/handler"
	"github.com/render-shortcodes/render/internal/web/navigation"
)

const (
	// Path is the path to the settings page.
	Path = handler.AdminPath + "/settings"

	// LicensePath receives the license activation buttons.
	LicensePath = Path + "/license"

	// TemplateName is the name of the settings template.
	TemplateName = "admin/settings/settings"

	// ButtonActivate is the name of the activate button.
	ButtonActivate = "edd_license_activate"
	// ButtonDeactivate is the name of the deactivate button.
	ButtonDeactivate = "edd_license_deactivate"
)

// Form is the settings form.
type Form struct {
	RenderVisual string `form:"render_render_visual" validate:"omitempty,oneof=1 on"`
	LicenseKey   string `form:"render_license_key" validate:"omitempty,max=191,printascii"`
}

// Service is the settings handler service.
type Service struct {
	handler.Service
	// Store is the licensing store. Init connects to the configured store when nil.
	Store     license.Store
	cfg       *config.Config
	db        *gorm.DB
	render    *render.Render
	manager   *license.Manager
	validator *validator.Validate
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, r *render.Render) error {
	if app == nil || cfg == nil || db == nil || r == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.render = r
	s.validator = validator.New()

	if s.Store == nil {
		s.Store = license.NewClient(cfg.License, cfg.Webserver.URL)
	}

	s.manager = license.NewManager(db, s.Store)

	requireAdmin := auth.RequirePermission(authService, auth.PermManageOptions)

	app.Get(Path, requireAdmin, s.Get)
	app.Post(Path, requireAdmin, s.Post)
	app.Post(LicensePath, requireAdmin, s.License)

	return nil
}

// Manager returns the license manager used by the page.
func (s *Service) Manager() *license.Manager {
	return s.manager
}

func (s *Service) page(c *fiber.Ctx, status int, current *controller.Settings, data fiber.Map) error {
	nav := navigation.NewContext("Settings", "settings", "settings").
		AddBreadcrumb("Home", handler.HomePath, false).
		AddBreadcrumb("Settings", Path, true)

	if data == nil {
		data = fiber.Map{}
	}

	data["Settings"] = current
	data["LicensePath"] = LicensePath

	return c.Status(status).Render(TemplateName, handler.Page(c, s.render, nav, data), handler.BaseLayout)
}

// Get renders the settings page.
func (s *Service) Get(c *fiber.Ctx) error {
	current, err := controller.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	return s.page(c, fiber.StatusOK, current, nil)
}

// Post saves the settings form. Changing the license key removes the stored license status.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse settings form")

		return s.page(c, fiber.StatusBadRequest, &controller.Settings{}, fiber.Map{"Error": "Invalid form data"})
	}

	form.LicenseKey = strings.TrimSpace(form.LicenseKey)
	submitted := &controller.Settings{RenderVisual: form.RenderVisual != "", LicenseKey: form.LicenseKey}

	if err := s.validator.Struct(form); err != nil {
		log.Warn().Strs("errors", handler.ValidationMessages(err)).Msg("validation failed for settings")

		return s.page(c, fiber.StatusBadRequest, submitted, fiber.Map{"Error": handler.ValidationMessages(err)})
	}

	if err := controller.Save(s.db, submitted.RenderVisual, submitted.LicenseKey); err != nil {
		log.Error().Err(err).Msg("failed to save settings")

		return s.page(c, fiber.StatusInternalServerError, submitted, fiber.Map{"Error": "Failed to save settings"})
	}

	current, err := controller.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	log.Info().Bool("render_visual", current.RenderVisual).Bool("license_key", current.LicenseKey != "").
		Msg("settings saved")

	return s.page(c, fiber.StatusOK, current, fiber.Map{"Success": "Settings saved."})
}

// License activates or deactivates the stored license key, depending on the pressed button.
func (s *Service) License(c *fiber.Ctx) error {
	var (
		status string
		err    error
		action string
	)

	switch {
	case c.FormValue(ButtonActivate) != "":
		action = "activate"
		status, err = s.manager.Activate()
	case c.FormValue(ButtonDeactivate) != "":
		action = "deactivate"
		status, err = s.manager.Deactivate()
	default:
		return c.Status(fiber.StatusBadRequest).SendString("Unknown license action")
	}

	current, loadErr := controller.Load(s.db)
	if loadErr != nil {
		log.Error().Err(loadErr).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	switch {
	case errors.Is(err, license.ErrEmptyKey):
		return s.page(c, fiber.StatusBadRequest, current, fiber.Map{"Error": "Enter and save a license key first."})
	case err != nil:
		log.Error().Err(err).Str("action", action).Msg("license request failed")

		return s.page(c, fiber.StatusBadGateway, current, fiber.Map{"Error": "The license server could not be reached."})
	}

	return s.page(c, fiber.StatusOK, current, fiber.Map{"Success": "License status: " + status})
}
