// Package wordpress provides Render definitions for the media shortcodes a
// WordPress site ships with.
package wordpress

import (
	"fmt"
	"html"

	"github.com/render-shortcodes/render/internal/shortcode"
)

// Source is the source label of the media shortcodes.
const Source = "WordPress"

// Media returns the media shortcodes.
func Media() []shortcode.Shortcode {
	return []shortcode.Shortcode{
		{
			Code:        "caption",
			Func:        caption,
			Title:       "Caption",
			Description: "Wraps an image or other content in a caption.",
			Source:      Source,
			Category:    "media",
			Atts: []shortcode.Attribute{
				{Name: "id", Label: "ID"},
				{Name: "align", Label: "Alignment", Default: "alignnone", Options: []string{"alignnone", "alignleft", "aligncenter", "alignright"}},
				{Name: "width", Label: "Width"},
				{Name: "caption", Label: "Caption"},
			},
			Wrapping: true,
		},
		{
			Code:        "audio",
			Func:        audio,
			Title:       "Audio",
			Description: "Embeds an audio file.",
			Source:      Source,
			Category:    "media",
			Atts: []shortcode.Attribute{
				{Name: "src", Label: "Source", Required: true},
				{Name: "loop", Label: "Loop"},
				{Name: "autoplay", Label: "Autoplay"},
			},
		},
		{
			Code:        "video",
			Func:        video,
			Title:       "Video",
			Description: "Embeds a video file.",
			Source:      Source,
			Category:    "media",
			Atts: []shortcode.Attribute{
				{Name: "src", Label: "Source", Required: true},
				{Name: "width", Label: "Width", Default: "640"},
				{Name: "height", Label: "Height", Default: "360"},
				{Name: "poster", Label: "Poster"},
			},
		},
		{
			Code:        "embed",
			Func:        embed,
			Title:       "Embed",
			Description: "Embeds the URL given as content.",
			Source:      Source,
			Category:    "media",
			Atts: []shortcode.Attribute{
				{Name: "width", Label: "Width"},
				{Name: "height", Label: "Height"},
			},
			Wrapping: true,
		},
	}
}

func caption(_ *shortcode.Context, atts shortcode.Atts, content string) string {
	style := ""
	if w := atts.Int("width", 0); w > 0 {
		style = fmt.Sprintf(` style="width: %dpx"`, w)
	}

	id := ""
	if v := atts.Get("id", ""); v != "" {
		id = ` id="` + html.EscapeString(v) + `"`
	}

	return fmt.Sprintf(`<figure%s class="wp-caption %s"%s>%s<figcaption class="wp-caption-text">%s</figcaption></figure>`,
		id, html.EscapeString(atts.Get("align", "alignnone")), style, content, html.EscapeString(atts.Get("caption", "")))
}

func boolAttr(atts shortcode.Atts, name string) string {
	if atts.Bool(name, false) {
		return " " + name
	}

	return ""
}

func audio(_ *shortcode.Context, atts shortcode.Atts, _ string) string {
	return fmt.Sprintf(`<audio class="wp-audio-shortcode" controls%s%s src="%s"></audio>`,
		boolAttr(atts, "loop"), boolAttr(atts, "autoplay"), html.EscapeString(atts.Get("src", "")))
}

func video(_ *shortcode.Context, atts shortcode.Atts, _ string) string {
	poster := ""
	if v := atts.Get("poster", ""); v != "" {
		poster = ` poster="` + html.EscapeString(v) + `"`
	}

	return fmt.Sprintf(`<video class="wp-video-shortcode" controls width="%d" height="%d"%s src="%s"></video>`,
		atts.Int("width", 640), atts.Int("height", 360), poster, html.EscapeString(atts.Get("src", "")))
}

func embed(_ *shortcode.Context, atts shortcode.Atts, content string) string {
	size := ""
	if w := atts.Int("width", 0); w > 0 {
		size += fmt.Sprintf(` width="%d"`, w)
	}

	if h := atts.Int("height", 0); h > 0 {
		size += fmt.Sprintf(` height="%d"`, h)
	}

	return fmt.Sprintf(`<iframe class="wp-embedded-content" src="%s"%s></iframe>`, html.EscapeString(content), size)
}
