package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/render"
	"github.com/render-shortcodes/render/internal/web/navigation"
)

// Page adds the layout data of an admin page to data.
func Page(c *fiber.Ctx, r *render.Render, nav *navigation.Context, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	styles, scripts := r.Assets().Enqueue(render.HandleAdmin, render.HandleChosen)

	data["Navigation"] = nav
	data["Styles"] = styles
	data["Scripts"] = scripts

	if user, ok := auth.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}

	return data
}

// ValidationMessages turns validator errors into form messages.
func ValidationMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, len(validationErrors))
	for i, ve := range validationErrors {
		messages[i] = fmt.Sprintf("Field '%s' failed validation tag '%s'", ve.Field(), ve.Tag())
	}

	return messages
}
