// Package shortcode holds the shortcode registry and the content expander.
package shortcode

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultSource is the source of a shortcode registered without one.
	DefaultSource = "Unknown"

	// DefaultCategory is the category of a shortcode registered without one.
	DefaultCategory = "other"
)

var (
	// ErrEmptyCode is returned when registering a shortcode without code.
	ErrEmptyCode = errors.New("shortcode code cannot be empty")
	// ErrInvalidCode is returned when the code contains characters the expander cannot match.
	ErrInvalidCode = errors.New("shortcode code may only contain letters, digits, '_' and '-'")
	// ErrDuplicateCode is returned when a code is registered twice.
	ErrDuplicateCode = errors.New("shortcode code already registered")
	// ErrNilFunc is returned when registering a shortcode without a render function.
	ErrNilFunc = errors.New("shortcode function cannot be nil")
)

// Func renders a shortcode. content is the already expanded inner content of
// a wrapping shortcode and empty otherwise.
type Func func(ctx *Context, atts Atts, content string) string

// Attribute describes one shortcode attribute.
type Attribute struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Default     string   `json:"default,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// Shortcode is a registered shortcode definition.
type Shortcode struct {
	Code        string      `json:"code"`
	Func        Func        `json:"-"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Source      string      `json:"source"`
	Tags        string      `json:"tags,omitempty"`
	Category    string      `json:"category"`
	Atts        []Attribute `json:"atts"`
	Example     string      `json:"example,omitempty"`
	Wrapping    bool        `json:"wrapping"`
	Render      bool        `json:"render"`
	NoDisplay   bool        `json:"noDisplay"`
}

// AttributeLabels returns the labels of all attributes in declaration order.
func (s Shortcode) AttributeLabels() []string {
	labels := make([]string, 0, len(s.Atts))
	for _, att := range s.Atts {
		labels = append(labels, att.Label)
	}

	return labels
}

func (s Shortcode) clone() Shortcode {
	s.Atts = slices.Clone(s.Atts)
	if s.Atts == nil {
		s.Atts = []Attribute{}
	}

	return s
}

func validCode(code string) bool {
	for _, r := range code {
		if !isNameRune(r) {
			return false
		}
	}

	return true
}

// Registry maps codes to shortcode definitions and keeps registration order.
type Registry struct {
	mu    sync.RWMutex
	order []string
	items map[string]Shortcode
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Shortcode)}
}

// Register adds a shortcode, applying defaults for source and category.
func (r *Registry) Register(sc Shortcode) error {
	switch {
	case sc.Code == "":
		return ErrEmptyCode
	case !validCode(sc.Code):
		return ErrInvalidCode
	case sc.Func == nil:
		return ErrNilFunc
	}

	if sc.Source == "" {
		sc.Source = DefaultSource
	}

	if sc.Category == "" {
		sc.Category = DefaultCategory
	}

	sc = sc.clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[sc.Code]; ok {
		return ErrDuplicateCode
	}

	r.items[sc.Code] = sc
	r.order = append(r.order, sc.Code)

	return nil
}

// MustRegister registers all shortcodes and panics on the first error.
func (r *Registry) MustRegister(scs ...Shortcode) {
	for _, sc := range scs {
		if err := r.Register(sc); err != nil {
			panic(sc.Code + ": " + err.Error())
		}
	}
}

// Get returns the shortcode registered under code.
func (r *Registry) Get(code string) (Shortcode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sc, ok := r.items[code]
	if !ok {
		return Shortcode{}, false
	}

	return sc.clone(), true
}

// Len returns the number of registered shortcodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// All returns every shortcode in registration order.
func (r *Registry) All() []Shortcode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Shortcode, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.items[code].clone())
	}

	return out
}

// Codes returns every code in registration order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// Categories returns the distinct categories in first seen order.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	out := make([]string, 0)

	for _, code := range r.order {
		cat := r.items[code].Category
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}

	return out
}

// Without returns a new registry holding every shortcode whose code is not in disabled.
func (r *Registry) Without(disabled map[string]bool) *Registry {
	out := NewRegistry()

	for _, sc := range r.All() {
		if disabled[sc.Code] {
			continue
		}

		out.items[sc.Code] = sc
		out.order = append(out.order, sc.Code)
	}

	return out
}

var categoryNames = map[string]string{
	"design":     "Design",
	"post":       "Post",
	"site":       "Site",
	"time":       "Time",
	"user":       "User",
	"visibility": "Visibility",
	"query":      "Query",
	"media":      "Media",
	"other":      "Other",
}

// CategoryName translates a category id to its display name.
func CategoryName(id string) string {
	if name, ok := categoryNames[id]; ok {
		return name
	}

	// casers keep state, so one per call
	return cases.Title(language.English).String(strings.NewReplacer("_", " ", "-", " ").Replace(id))
}
