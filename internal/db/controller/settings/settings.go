// Package settings reads and writes the service settings stored as options.
package settings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/db/controller/option"
)

const (
	// OptionRenderVisual toggles the visual shortcode renderer in the editor.
	OptionRenderVisual = "render_render_visual"
	// OptionLicenseKey holds the license key.
	OptionLicenseKey = "render_license_key"
	// OptionLicenseStatus holds the status returned by the licensing API.
	OptionLicenseStatus = "render_license_status"

	// DefaultRenderVisual is the value of OptionRenderVisual when unset.
	DefaultRenderVisual = "1"

	// StatusValid is the license status of an active license.
	StatusValid = "valid"
)

// Settings is the settings form state.
type Settings struct {
	RenderVisual  bool
	LicenseKey    string
	LicenseStatus string
}

// LicenseValid reports whether the stored license status is valid.
func (s Settings) LicenseValid() bool {
	return s.LicenseStatus == StatusValid
}

// ShowActivate reports whether the activate button is offered.
func (s Settings) ShowActivate() bool {
	return s.LicenseKey != "" && !s.LicenseValid()
}

// ShowDeactivate reports whether the deactivate button is offered.
func (s Settings) ShowDeactivate() bool {
	return s.LicenseKey != "" && s.LicenseValid()
}

// Load reads all settings.
func Load(db *gorm.DB) (*Settings, error) {
	visual, err := option.GetString(db, OptionRenderVisual, DefaultRenderVisual)
	if err != nil {
		return nil, err
	}

	key, err := option.GetString(db, OptionLicenseKey, "")
	if err != nil {
		return nil, err
	}

	status, err := option.GetString(db, OptionLicenseStatus, "")
	if err != nil {
		return nil, err
	}

	return &Settings{
		RenderVisual:  visual == "1",
		LicenseKey:    key,
		LicenseStatus: status,
	}, nil
}

// Save stores the form values. A changed license key invalidates the stored
// license status, which then has to be activated again.
func Save(db *gorm.DB, renderVisual bool, licenseKey string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		old, err := option.GetString(tx, OptionLicenseKey, "")
		if err != nil {
			return err
		}

		if old != "" && old != licenseKey {
			if err = ClearLicenseStatus(tx); err != nil {
				return err
			}
		}

		visual := "0"
		if renderVisual {
			visual = "1"
		}

		if err = option.SetString(tx, OptionRenderVisual, visual); err != nil {
			return err
		}

		return option.SetString(tx, OptionLicenseKey, licenseKey)
	})
}

// SetLicenseStatus stores the license status.
func SetLicenseStatus(db *gorm.DB, status string) error {
	return option.SetString(db, OptionLicenseStatus, status)
}

// ClearLicenseStatus removes the stored license status. It is not an error
// when no status is stored.
func ClearLicenseStatus(db *gorm.DB) error {
	err := option.Delete(db, OptionLicenseStatus)
	if errors.Is(err, option.ErrOptionNotFound) {
		return nil
	}

	return err
}
