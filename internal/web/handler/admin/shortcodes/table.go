package shortcodes

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/render-shortcodes/render/internal/db/controller/disabled"
	"github.com/render-shortcodes/render/internal/listview"
	"github.com/render-shortcodes/render/internal/shortcode"
)

const (
	desc = "desc"
	asc  = "asc"

	// AllCategories is the category filter value selecting every category.
	AllCategories = "0"

	// NoAttributes is shown for shortcodes without attributes.
	NoAttributes = "None"

	// NoItems is shown when no shortcode matches.
	NoItems = "Sorry, couldn't find any shortcodes."
)

// sortKeys are the sortable columns.
var sortKeys = map[string]func(Row) string{
	"name":     func(r Row) string { return r.Name },
	"code":     func(r Row) string { return r.Code },
	"source":   func(r Row) string { return r.Source },
	"category": func(r Row) string { return r.Category },
}

// Params holds the list view query parameters.
type Params struct {
	Search   string
	Category string
	OrderBy  string
	Order    string
	Page     int
	PerPage  int
}

// ParseParams reads the list view parameters. Missing or malformed values fall back to defaults.
func ParseParams(c *fiber.Ctx, perPage int) Params {
	p := Params{
		Search:   c.Query("s"),
		Category: c.Query("category"),
		OrderBy:  c.Query("orderby", "name"),
		Order:    c.Query("order", asc),
		Page:     c.QueryInt("paged", 1),
		PerPage:  perPage,
	}

	return p.normalize()
}

func (p Params) normalize() Params {
	if p.Category == AllCategories {
		p.Category = ""
	}

	if _, ok := sortKeys[p.OrderBy]; !ok {
		p.OrderBy = "name"
	}

	if p.Order != desc {
		p.Order = asc
	}

	if p.Page < 1 {
		p.Page = 1
	}

	if p.PerPage < 1 {
		p.PerPage = listview.DefaultPageSize
	}

	return p
}

// Query encodes the parameters for links, leaving out defaults and the page.
func (p Params) Query() string {
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)

	if p.Search != "" {
		args.Set("s", p.Search)
	}

	if p.Category != "" {
		args.Set("category", p.Category)
	}

	if p.OrderBy != "name" {
		args.Set("orderby", p.OrderBy)
	}

	if p.Order == desc {
		args.Set("order", desc)
	}

	return args.String()
}

// SortQuery returns the query sorting by column, toggling the order when it is the current column.
func (p Params) SortQuery(column string) string {
	next := p
	next.OrderBy = column
	next.Order = asc

	if p.OrderBy == column && p.Order == asc {
		next.Order = desc
	}

	return next.Query()
}

// PageQuery returns the query of page n.
func (p Params) PageQuery(n int) string {
	q := p.Query()
	if q != "" {
		q += "&"
	}

	return q + "paged=" + strconv.Itoa(n)
}

// Row is one rendered table row.
type Row struct {
	Code         string
	Name         string
	Description  string
	Category     string
	CategoryName string
	Source       string
	Attributes   string
	Disabled     bool
}

// Action is the row action offered for the current state.
func (r Row) Action() string {
	if r.Disabled {
		return ActionEnable
	}

	return ActionDisable
}

// ActionLabel is the label of the row action.
func (r Row) ActionLabel() string {
	if r.Disabled {
		return "Enable"
	}

	return "Disable"
}

// CategoryOption is an entry of the category filter.
type CategoryOption struct {
	ID       string
	Name     string
	Selected bool
}

func newRow(sc shortcode.Shortcode, off map[string]bool) Row {
	attributes := NoAttributes
	if labels := sc.AttributeLabels(); len(labels) > 0 {
		attributes = strings.Join(labels, ", ")
	}

	return Row{
		Code:         sc.Code,
		Name:         sc.Title,
		Description:  sc.Description,
		Category:     sc.Category,
		CategoryName: shortcode.CategoryName(sc.Category),
		Source:       sc.Source,
		Attributes:   attributes,
		Disabled:     off[sc.Code],
	}
}

func matches(sc shortcode.Shortcode, search, category string) bool {
	if search != "" {
		merged := sc.Title + sc.Category + sc.Description + sc.Code
		if !strings.Contains(strings.ToLower(merged), strings.ToLower(search)) {
			return false
		}
	}

	return category == "" || sc.Category == category
}

// Build filters, sorts and paginates the shortcodes.
func Build(all []shortcode.Shortcode, off disabled.Set, p Params) listview.Page[Row] {
	p = p.normalize()
	lookup := off.Lookup()

	candidates := listview.Filter(all, func(sc shortcode.Shortcode) bool {
		return matches(sc, p.Search, p.Category)
	})

	rows := make([]Row, 0, len(candidates))
	for _, sc := range candidates {
		rows = append(rows, newRow(sc, lookup))
	}

	listview.Sort(rows, sortKeys[p.OrderBy], p.Order == desc)

	return listview.Paginate(rows, p.Page, p.PerPage)
}

// Categories returns the category filter options.
func Categories(ids []string, selected string) []CategoryOption {
	out := make([]CategoryOption, 0, len(ids))
	for _, id := range ids {
		out = append(out, CategoryOption{ID: id, Name: shortcode.CategoryName(id), Selected: id == selected})
	}

	return out
}
