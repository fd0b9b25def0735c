package render

import (
	"strconv"
	"time"
)

// AssetKind is the kind of a registered asset.
type AssetKind string

const (
	// Style is a stylesheet.
	Style AssetKind = "style"
	// Script is a javascript file.
	Script AssetKind = "script"
)

const (
	// HandleFront is the bundle enqueued on front end pages.
	HandleFront = "render"
	// HandleAdmin is the bundle enqueued on admin pages.
	HandleAdmin = "render-admin"
	// HandleChosen is the select box enhancement bundle.
	HandleChosen = "render-chosen"
)

// Asset is a registered stylesheet or script.
type Asset struct {
	Handle  string
	Kind    AssetKind
	Path    string
	Version string
}

// URL returns the versioned URL of the asset.
func (a Asset) URL() string {
	return a.Path + "?ver=" + a.Version
}

// Assets holds the registered assets.
type Assets struct {
	list []Asset
}

// assetVersion returns the build version, or the current unix time in dev mode.
func assetVersion(version string, devMode bool) string {
	if devMode || version == "" {
		return strconv.FormatInt(time.Now().Unix(), 10)
	}

	return version
}

func registerAssets(version string) *Assets {
	return &Assets{list: []Asset{
		{Handle: HandleFront, Kind: Style, Path: "/static/css/render.css", Version: version},
		{Handle: HandleAdmin, Kind: Style, Path: "/static/css/render-admin.css", Version: version},
		{Handle: HandleChosen, Kind: Style, Path: "/static/css/chosen.css", Version: version},
		{Handle: HandleFront, Kind: Script, Path: "/static/js/render.js", Version: version},
		{Handle: HandleAdmin, Kind: Script, Path: "/static/js/render-admin.js", Version: version},
		{Handle: HandleChosen, Kind: Script, Path: "/static/js/chosen.js", Version: version},
	}}
}

// All returns every registered asset.
func (a *Assets) All() []Asset {
	return append([]Asset(nil), a.list...)
}

// Enqueue returns the assets of the given handles, styles first.
func (a *Assets) Enqueue(handles ...string) (styles, scripts []Asset) {
	for _, asset := range a.list {
		for _, h := range handles {
			if asset.Handle != h {
				continue
			}

			if asset.Kind == Style {
				styles = append(styles, asset)
			} else {
				scripts = append(scripts, asset)
			}
		}
	}

	return styles, scripts
}
