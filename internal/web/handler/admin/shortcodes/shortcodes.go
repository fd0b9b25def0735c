// Package shortcodes provides the admin table of shortcodes and the bulk disable/enable command.
package shortcodes

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/config"
	"github.com/render-shortcodes/render/internal/db/controller/disabled"
	"github.com/render-shortcodes/render/internal/db/controller/option"
	"github.com/render-shortcodes/render/internal/listview"
	"github.com/render-shortcodes/render/internal/render"
	"github.com/render-shortcodes/render/internal/web/handler"
	"github.com/render-shortcodes/render/internal/web/navigation"
)

const (
	// Path is the path to the shortcodes page.
	Path = handler.AdminPath + "/shortcodes"

	// BulkPath receives the bulk and row actions.
	BulkPath = Path + "/bulk"

	// ScreenOptionsPath receives the per page preference.
	ScreenOptionsPath = Path + "/screen-options"

	// TemplateName is the name of the shortcodes template.
	TemplateName = "admin/shortcodes/list"

	// PerPageOption is the per user option holding the page size.
	PerPageOption = "shortcodes_per_page"

	// MaxPerPage is the largest accepted page size.
	MaxPerPage = 999

	// ActionDisable disables the selected shortcodes.
	ActionDisable = "disable"
	// ActionEnable enables the selected shortcodes.
	ActionEnable = "enable"
)

var bulkActions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "render",
		Name:      "shortcodes_bulk_actions_total",
		Help:      "Number of shortcodes disabled or enabled through the admin table.",
	},
	[]string{"action"},
)

// BulkForm is the bulk action form.
type BulkForm struct {
	Action string   `validate:"required,oneof=disable enable"`
	Codes  []string `validate:"required,min=1,dive,required,max=191"`
}

// ScreenOptionsForm is the screen options form.
type ScreenOptionsForm struct {
	PerPage int `form:"shortcodes_per_page" validate:"min=1,max=999"`
}

// Service is the shortcodes handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	render    *render.Render
	validator *validator.Validate
}

// Handler is the shortcodes handler.
var Handler = Service{}

// Init initializes the shortcodes handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, r *render.Render) error {
	if app == nil || cfg == nil || db == nil || r == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.render = r
	s.validator = validator.New()

	requireAdmin := auth.RequirePermission(authService, auth.PermManageOptions)

	app.Get(Path, requireAdmin, s.List)
	app.Post(BulkPath, requireAdmin, s.Bulk)
	app.Post(ScreenOptionsPath, requireAdmin, s.ScreenOptions)

	return nil
}

// perPage returns the page size preference of the current user.
func (s *Service) perPage(c *fiber.Ctx) int {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return listview.DefaultPageSize
	}

	value, err := option.GetString(s.db, option.UserKey(user.ID, PerPageOption), "")
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to read per page preference")
		return listview.DefaultPageSize
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > MaxPerPage {
		return listview.DefaultPageSize
	}

	return n
}

// List renders the shortcodes table. It never changes the disabled set.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext("Shortcodes", "shortcodes", "list").
		AddBreadcrumb("Home", handler.HomePath, false).
		AddBreadcrumb("Shortcodes", Path, true)

	params := ParseParams(c, s.perPage(c))

	off, err := s.render.Disabled()
	if err != nil {
		log.Error().Err(err).Msg("failed to load disabled shortcodes")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load disabled shortcodes")
	}

	registry := s.render.Registry()
	page := Build(registry.All(), off, params)

	log.Debug().
		Int("total", page.TotalItems).
		Int("page", page.CurrentPage).
		Int("per_page", page.PageSize).
		Str("search", params.Search).
		Str("category", params.Category).
		Str("orderby", params.OrderBy).
		Str("order", params.Order).
		Msg("shortcodes listed")

	return c.Render(TemplateName, handler.Page(c, s.render, nav, fiber.Map{
		"Table":      page,
		"Params":     params,
		"Categories": Categories(registry.Categories(), params.Category),
		"NoItems":    NoItems,
		"Updated":    c.QueryInt("updated", 0),
		"Done":       c.Query("done"),
		"BulkPath":   BulkPath,
		"ScreenPath": ScreenOptionsPath,
	}), handler.BaseLayout)
}

// parseBulkForm reads the action and the codes. The codes may be sent as
// shortcodes[] from the table checkboxes or as shortcodes from a row action.
func parseBulkForm(c *fiber.Ctx) BulkForm {
	form := BulkForm{Action: c.FormValue("action")}

	// the bottom bulk selector of the table
	if form.Action == "" || form.Action == "-1" {
		form.Action = c.FormValue("action2")
	}

	args := c.Request().PostArgs()
	for _, key := range []string{"shortcodes[]", "shortcodes"} {
		for _, v := range args.PeekMulti(key) {
			form.Codes = append(form.Codes, string(v))
		}
	}

	return form
}

// Bulk applies a disable or enable action and redirects back to the table.
func (s *Service) Bulk(c *fiber.Ctx) error {
	form := parseBulkForm(c)

	if err := s.validator.Struct(form); err != nil {
		log.Warn().Strs("errors", handler.ValidationMessages(err)).Msg("invalid bulk action")

		return c.Status(fiber.StatusBadRequest).SendString("Invalid bulk action")
	}

	// only registered codes can be toggled
	codes := make([]string, 0, len(form.Codes))

	for _, code := range form.Codes {
		if _, ok := s.render.Registry().Get(code); ok {
			codes = append(codes, code)
		}
	}

	var err error

	switch form.Action {
	case ActionDisable:
		_, err = disabled.Disable(s.db, codes...)
	case ActionEnable:
		_, err = disabled.Enable(s.db, codes...)
	}

	if err != nil {
		log.Error().Err(err).Str("action", form.Action).Strs("codes", codes).Msg("failed to update disabled shortcodes")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to update shortcodes")
	}

	bulkActions.WithLabelValues(form.Action).Add(float64(len(codes)))

	log.Info().Str("action", form.Action).Strs("codes", codes).Msg("shortcodes updated")

	params := Params{
		Search:   c.FormValue("s"),
		Category: c.FormValue("category"),
		OrderBy:  c.FormValue("orderby"),
		Order:    c.FormValue("order"),
	}.normalize()

	target := Path + "?" + params.PageQuery(max(c.QueryInt("paged", 1), 1))
	target += "&done=" + form.Action + "&updated=" + strconv.Itoa(len(codes))

	return c.Redirect(target, fiber.StatusSeeOther)
}

// ScreenOptions stores the page size preference of the current user.
func (s *Service) ScreenOptions(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
	}

	form := new(ScreenOptionsForm)
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		log.Warn().Strs("errors", handler.ValidationMessages(err)).Msg("invalid screen options")

		return c.Status(fiber.StatusBadRequest).SendString("Invalid screen options")
	}

	if err := option.SetString(s.db, option.UserKey(user.ID, PerPageOption), strconv.Itoa(form.PerPage)); err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to store per page preference")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to store screen options")
	}

	return c.Redirect(Path, fiber.StatusSeeOther)
}
