package core

import (
	"html"
	"strconv"

	"github.com/ncruces/go-strftime"

	"github.com/render-shortcodes/render/internal/shortcode"
)

const defaultDateFormat = "%B %d, %Y"

var dateFormatAtt = shortcode.Attribute{
	Name:        "format",
	Label:       "Date format",
	Description: "strftime format, e.g. %Y-%m-%d",
	Default:     defaultDateFormat,
}

// Post returns the shortcodes reading the current post.
func Post() []shortcode.Shortcode {
	return []shortcode.Shortcode{
		{
			Code:        "render_post_id",
			Func:        postField(func(p *shortcode.Post, _ shortcode.Atts) string { return strconv.FormatUint(p.ID, 10) }),
			Title:       "Post ID",
			Description: "Outputs the ID of the current post.",
			Source:      Source,
			Category:    "post",
		},
		{
			Code:        "render_post_title",
			Func:        postField(func(p *shortcode.Post, _ shortcode.Atts) string { return html.EscapeString(p.Title) }),
			Title:       "Post Title",
			Description: "Outputs the title of the current post.",
			Source:      Source,
			Category:    "post",
		},
		{
			Code:        "render_post_author",
			Func:        postField(func(p *shortcode.Post, _ shortcode.Atts) string { return html.EscapeString(p.Author) }),
			Title:       "Post Author",
			Description: "Outputs the author of the current post.",
			Source:      Source,
			Category:    "post",
		},
		{
			Code:        "render_post_excerpt",
			Func:        postField(func(p *shortcode.Post, _ shortcode.Atts) string { return html.EscapeString(p.Excerpt) }),
			Title:       "Post Excerpt",
			Description: "Outputs the excerpt of the current post.",
			Source:      Source,
			Category:    "post",
		},
		{
			Code: "render_post_published_date",
			Func: postField(func(p *shortcode.Post, atts shortcode.Atts) string {
				return html.EscapeString(strftime.Format(atts.Get("format", defaultDateFormat), p.Published))
			}),
			Title:       "Post Published Date",
			Description: "Outputs the date the current post was published.",
			Source:      Source,
			Category:    "post",
			Atts:        []shortcode.Attribute{dateFormatAtt},
		},
		{
			Code: "render_post_link",
			Func: postField(func(p *shortcode.Post, atts shortcode.Atts) string {
				text := atts.Get("text", p.Title)
				return `<a href="` + html.EscapeString(p.URL) + `">` + html.EscapeString(text) + `</a>`
			}),
			Title:       "Post Link",
			Description: "Outputs a link to the current post.",
			Source:      Source,
			Category:    "post",
			Atts:        []shortcode.Attribute{{Name: "text", Label: "Link text"}},
		},
	}
}

// postField renders nothing when no post is in context.
func postField(fn func(*shortcode.Post, shortcode.Atts) string) shortcode.Func {
	return func(ctx *shortcode.Context, atts shortcode.Atts, _ string) string {
		if ctx == nil || ctx.Post == nil {
			return ""
		}

		return fn(ctx.Post, atts)
	}
}
