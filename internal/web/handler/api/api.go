// Package api serves the editor endpoints: the shortcode data of the visual
// editor and content rendering.
package api

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/config"
	controller "github.com/render-shortcodes/render/internal/db/controller/settings"
	"github.com/render-shortcodes/render/internal/render"
	"github.com/render-shortcodes/render/internal/shortcode"
	"github.com/render-shortcodes/render/internal/web/handler"
)

const (
	// ShortcodesPath serves the editor data.
	ShortcodesPath = handler.APIPath + "/shortcodes"

	// RenderPath expands the shortcodes of posted content.
	RenderPath = handler.APIPath + "/render"

	// MaxContentLength is the largest accepted content, in characters.
	MaxContentLength = 1 << 20
)

// EditorData is the data the visual editor loads.
type EditorData struct {
	RenderVisual bool                  `json:"renderVisual"`
	Shortcodes   []shortcode.Shortcode `json:"shortcodes"`
}

// RenderRequest is the body of a render request.
type RenderRequest struct {
	Content string            `json:"content" validate:"max=1048576"`
	Post    *shortcode.Post   `json:"post"`
	Query   map[string]string `json:"query"`
}

// RenderResponse is the answer to a render request. Styles and Scripts hold
// the versioned URLs of the front end bundle the rendered content needs.
type RenderResponse struct {
	Content string   `json:"content"`
	Styles  []string `json:"styles"`
	Scripts []string `json:"scripts"`
}

// ErrorResponse is returned on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Service is the api handler service.
type Service struct {
	handler.Service
	db        *gorm.DB
	render    *render.Render
	validator *validator.Validate
}

// Handler is the api handler.
var Handler = Service{}

// Init initializes the api handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, r *render.Render) error {
	if app == nil || cfg == nil || db == nil || r == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.render = r
	s.validator = validator.New()

	requireEditor := auth.RequireAnyPermission(authService, auth.PermEditPosts, auth.PermManageOptions)

	app.Get(ShortcodesPath, requireEditor, s.Shortcodes)
	app.Post(RenderPath, requireEditor, s.Render)

	return nil
}

// Shortcodes returns the active shortcodes shown in the editor.
func (s *Service) Shortcodes(c *fiber.Ctx) error {
	active, err := s.render.Active()
	if err != nil {
		log.Error().Err(err).Msg("failed to load active shortcodes")

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load shortcodes"})
	}

	current, err := controller.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load settings"})
	}

	data := EditorData{RenderVisual: current.RenderVisual, Shortcodes: []shortcode.Shortcode{}}

	for _, sc := range active.All() {
		if sc.NoDisplay {
			continue
		}

		data.Shortcodes = append(data.Shortcodes, sc)
	}

	return c.JSON(data)
}

// Render expands the active shortcodes of the posted content for the current user.
func (s *Service) Render(c *fiber.Ctx) error {
	req := new(RenderRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		log.Warn().Strs("errors", handler.ValidationMessages(err)).Msg("invalid render request")

		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(ErrorResponse{Error: "content too large"})
	}

	var user *shortcode.User

	if u, ok := auth.CurrentUser(c); ok {
		user = &shortcode.User{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			Role:        u.Role,
		}
	}

	query := url.Values{}
	for k, v := range req.Query {
		query.Set(k, v)
	}

	ctx := s.render.Context(user, query)
	ctx.Post = req.Post

	out, err := s.render.Expand(ctx, req.Content)
	if err != nil {
		log.Error().Err(err).Msg("failed to render content")

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to render content"})
	}

	styles, scripts := s.render.Assets().Enqueue(render.HandleFront)

	return c.JSON(RenderResponse{Content: out, Styles: assetURLs(styles), Scripts: assetURLs(scripts)})
}

func assetURLs(assets []render.Asset) []string {
	urls := make([]string, len(assets))
	for i, a := range assets {
		urls[i] = a.URL()
	}

	return urls
}
