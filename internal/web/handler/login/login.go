package login

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/config"
	"github.com/render-shortcodes/render/internal/db/models"
	"github.com/render-shortcodes/render/internal/render"
	"github.com/render-shortcodes/render/internal/web/handler"
	"github.com/render-shortcodes/render/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.RootPath + "login"

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// Form is the login form.
type Form struct {
	Username   string `form:"username" json:"username" validate:"required,max=60"`
	Password   string `form:"password" json:"password" validate:"required,max=256"`
	RedirectTo string `form:"redirect_to" json:"redirect_to"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	local     *auth.LocalProvider
	render    *render.Render
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service, r *render.Render) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.render = r
	s.local = auth.NewLocalProvider(db)
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)

	return nil
}

func (s *Service) page(c *fiber.Ctx, redirectTo string, err error) error {
	data := fiber.Map{
		"Title":       s.cfg.Title,
		"redirect_to": redirectTo,
	}

	if s.render != nil {
		styles, scripts := s.render.Assets().Enqueue(render.HandleAdmin)
		data["Styles"] = styles
		data["Scripts"] = scripts
	}

	if err != nil {
		data["error"] = err.Error()
	}

	return c.Render(TemplateName, data)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.page(c, c.Query("redirect_to"), nil)
}

// safeRedirect keeps local paths only.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return handler.HomePath
	}

	return target
}

// authenticate checks the credentials against the local user table.
func (s *Service) authenticate(username, password string) (*models.User, error) {
	user, err := s.local.Authenticate(username, password)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		return nil, ErrInvalidCredentials
	case errors.Is(err, auth.ErrUserAccountDisabled):
		return nil, ErrAccountDisabled
	default:
		log.Error().Err(err).Str("username", username).Msg("failed to authenticate user")
		return nil, ErrInternalServerError
	}
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.page(c, "", ErrInvalidFormData)
	}

	form.Username = strings.TrimSpace(form.Username)

	if err := s.validator.Struct(form); err != nil {
		return s.page(c, form.RedirectTo, ErrInvalidFormData)
	}

	user, err := s.authenticate(form.Username, form.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", form.Username).Str("ip", c.IP()).Msg("login failed")

		return s.page(c, form.RedirectTo, err)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")

		return s.page(c, form.RedirectTo, ErrInternalServerError)
	}

	userSession := &session.Data{
		User: session.UserFromModel(user),
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.page(c, form.RedirectTo, ErrInternalServerError)
	}

	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}

	c.Cookie(cookieSettings)

	log.Info().Uint64("user_id", user.ID).Str("username", user.Username).Msg("user logged in")

	return c.Redirect(safeRedirect(form.RedirectTo))
}
