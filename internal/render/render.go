// Package render bootstraps the shortcode library: it builds the registry from
// the static extension list, tracks disabled shortcodes and expands content.
package render

import (
	"net/url"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/db/controller/disabled"
	"github.com/render-shortcodes/render/internal/shortcode"
)

var instantiated atomic.Bool

// Options configure New.
type Options struct {
	Version string
	DevMode bool
	Site    shortcode.Site
}

// Render is the process wide shortcode library instance.
type Render struct {
	db       *gorm.DB
	opts     Options
	registry *shortcode.Registry
	assets   *Assets
}

// New builds the shortcode library. It succeeds once per process, later calls
// return ErrAlreadyInstantiated.
func New(db *gorm.DB, opts Options) (*Render, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if !instantiated.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInstantiated
	}

	registry, err := BuildRegistry(Extensions)
	if err != nil {
		instantiated.Store(false)
		return nil, err
	}

	set, err := disabled.Load(db)
	if err != nil {
		instantiated.Store(false)
		return nil, err
	}

	r := &Render{
		db:       db,
		opts:     opts,
		registry: registry,
		assets:   registerAssets(assetVersion(opts.Version, opts.DevMode)),
	}

	log.Info().
		Int("shortcodes", registry.Len()).
		Int("disabled", len(set)).
		Strs("categories", registry.Categories()).
		Msg("shortcode library initialized")

	return r, nil
}

// Registry returns every registered shortcode, disabled ones included.
func (r *Render) Registry() *shortcode.Registry {
	return r.registry
}

// Assets returns the registered asset bundles.
func (r *Render) Assets() *Assets {
	return r.assets
}

// Disabled returns the persisted disabled set.
func (r *Render) Disabled() (disabled.Set, error) {
	return disabled.Load(r.db)
}

// Active returns the registry without the disabled shortcodes.
func (r *Render) Active() (*shortcode.Registry, error) {
	set, err := r.Disabled()
	if err != nil {
		return nil, err
	}

	return r.registry.Without(set.Lookup()), nil
}

// Context returns a render context for the given user and request query.
func (r *Render) Context(user *shortcode.User, query url.Values) *shortcode.Context {
	return &shortcode.Context{
		Site:  r.opts.Site,
		User:  user,
		Query: query,
		Now:   time.Now(),
	}
}

// Expand strips editor paragraphs around shortcodes and expands the active shortcodes in content.
func (r *Render) Expand(ctx *shortcode.Context, content string) (string, error) {
	active, err := r.Active()
	if err != nil {
		return "", err
	}

	return active.Expand(ctx, shortcode.StripParagraphs(content)), nil
}
