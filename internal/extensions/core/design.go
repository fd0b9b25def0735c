package core

import (
	"fmt"
	"html"
	"strings"

	"github.com/render-shortcodes/render/internal/shortcode"
)

// Design returns the layout and styling shortcodes.
func Design() []shortcode.Shortcode {
	return []shortcode.Shortcode{
		{
			Code:        "render_button",
			Func:        button,
			Title:       "Button",
			Description: "Creates a sweet button.",
			Source:      Source,
			Tags:        "button link",
			Category:    "design",
			Atts: []shortcode.Attribute{
				{Name: "link", Label: "Link", Default: "#"},
				{Name: "size", Label: "Size", Default: "medium", Options: []string{"small", "medium", "large"}},
				{Name: "color", Label: "Color", Default: "#50A4B3"},
				{Name: "shape", Label: "Shape", Default: "rounded", Options: []string{"rounded", "square", "circle"}},
			},
			Example:  `[render_button link="https://example.com" size="large"]Click me[/render_button]`,
			Wrapping: true,
			Render:   true,
		},
		{
			Code:        "render_box",
			Func:        box,
			Title:       "Box",
			Description: "Creates a nice box for your content.",
			Source:      Source,
			Tags:        "box content",
			Category:    "design",
			Atts: []shortcode.Attribute{
				{Name: "style", Label: "Style", Default: "flat", Options: []string{"flat", "shadow", "bordered"}},
				{Name: "color", Label: "Background color", Default: "#50A4B3"},
				{Name: "font_color", Label: "Font color", Default: "#fff"},
			},
			Wrapping: true,
			Render:   true,
		},
		{
			Code:        "render_column",
			Func:        column,
			Title:       "Column",
			Description: "Places content in a column of the given width.",
			Source:      Source,
			Tags:        "column layout grid",
			Category:    "design",
			Atts: []shortcode.Attribute{
				{Name: "size", Label: "Size", Default: "one-half", Options: []string{"one-half", "one-third", "two-third", "one-fourth", "three-fourth"}},
				{Name: "last", Label: "Last column"},
			},
			Wrapping: true,
			Render:   true,
		},
	}
}

func attr(v string) string {
	return html.EscapeString(v)
}

func button(_ *shortcode.Context, atts shortcode.Atts, content string) string {
	return fmt.Sprintf(`<a href="%s" class="render-button %s %s" style="background: %s;">%s</a>`,
		attr(atts.Get("link", "#")),
		attr(atts.Get("size", "medium")),
		attr(atts.Get("shape", "rounded")),
		attr(atts.Get("color", "#50A4B3")),
		content,
	)
}

func box(_ *shortcode.Context, atts shortcode.Atts, content string) string {
	return fmt.Sprintf(`<div class="render-box %s" style="background: %s; color: %s;">%s</div>`,
		attr(atts.Get("style", "flat")),
		attr(atts.Get("color", "#50A4B3")),
		attr(atts.Get("font_color", "#fff")),
		content,
	)
}

func column(_ *shortcode.Context, atts shortcode.Atts, content string) string {
	classes := []string{"render-column", "render-column-" + attr(atts.Get("size", "one-half"))}
	if atts.Bool("last", false) {
		classes = append(classes, "render-column-last")
	}

	return fmt.Sprintf(`<div class="%s">%s</div>`, strings.Join(classes, " "), content)
}
