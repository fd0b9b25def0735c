package render

import (
	"github.com/render-shortcodes/render/internal/extensions/core"
	"github.com/render-shortcodes/render/internal/extensions/wordpress"
	"github.com/render-shortcodes/render/internal/shortcode"
)

// Category is one file worth of shortcode definitions.
type Category struct {
	ID         string
	Shortcodes func() []shortcode.Shortcode
}

// Extension groups the categories of one shortcode provider.
type Extension struct {
	Type       string
	Categories []Category
}

// Extensions is the fixed list of shortcode providers, loaded in this order.
var Extensions = []Extension{
	{
		Type: "core",
		Categories: []Category{
			{ID: "design", Shortcodes: core.Design},
			{ID: "post", Shortcodes: core.Post},
			{ID: "site", Shortcodes: core.Site},
			{ID: "time", Shortcodes: core.Time},
			{ID: "user", Shortcodes: core.User},
			{ID: "visibility", Shortcodes: core.Visibility},
			{ID: "query", Shortcodes: core.Query},
		},
	},
	{
		Type: "wordpress",
		Categories: []Category{
			{ID: "media", Shortcodes: wordpress.Media},
		},
	},
}

// BuildRegistry registers the shortcodes of every extension.
func BuildRegistry(extensions []Extension) (*shortcode.Registry, error) {
	r := shortcode.NewRegistry()

	for _, ext := range extensions {
		for _, cat := range ext.Categories {
			for _, sc := range cat.Shortcodes() {
				if err := r.Register(sc); err != nil {
					return nil, &RegisterError{Extension: ext.Type, Category: cat.ID, Code: sc.Code, Err: err}
				}
			}
		}
	}

	return r, nil
}
