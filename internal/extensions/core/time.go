package core

import (
	"html"
	"strconv"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/render-shortcodes/render/internal/shortcode"
)

// Time returns the date and time shortcodes.
func Time() []shortcode.Shortcode {
	return []shortcode.Shortcode{
		{
			Code: "render_current_date",
			Func: func(ctx *shortcode.Context, atts shortcode.Atts, _ string) string {
				return html.EscapeString(strftime.Format(atts.Get("format", defaultDateFormat), ctx.Time()))
			},
			Title:       "Current Date",
			Description: "Outputs the current date.",
			Source:      Source,
			Category:    "time",
			Atts:        []shortcode.Attribute{dateFormatAtt},
		},
		{
			Code: "render_current_year",
			Func: func(ctx *shortcode.Context, _ shortcode.Atts, _ string) string {
				return strconv.Itoa(ctx.Time().Year())
			},
			Title:       "Current Year",
			Description: "Outputs the current year.",
			Source:      Source,
			Category:    "time",
		},
		{
			Code:        "render_age",
			Func:        age,
			Title:       "Age",
			Description: "Outputs the whole years passed since a date.",
			Source:      Source,
			Category:    "time",
			Atts: []shortcode.Attribute{
				{Name: "date", Label: "Date", Description: "YYYY-MM-DD", Required: true},
			},
			Example: `[render_age date="1990-04-01"]`,
		},
	}
}

func age(ctx *shortcode.Context, atts shortcode.Atts, _ string) string {
	since, err := time.Parse(time.DateOnly, atts.Get("date", ""))
	if err != nil {
		return ""
	}

	now := ctx.Time()
	years := now.Year() - since.Year()

	if now.Month() < since.Month() || (now.Month() == since.Month() && now.Day() < since.Day()) {
		years--
	}

	if years < 0 {
		years = 0
	}

	return strconv.Itoa(years)
}
