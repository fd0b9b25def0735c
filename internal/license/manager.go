package license

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/db/controller/settings"
)

// Store is the licensing store API used by Manager.
type Store interface {
	Activate(key string) (*Response, error)
	Deactivate(key string) (*Response, error)
	Check(key string) (*Response, error)
}

// Manager applies store answers to the stored license status.
type Manager struct {
	db    *gorm.DB
	store Store
}

// NewManager returns a manager persisting to db.
func NewManager(db *gorm.DB, store Store) *Manager {
	return &Manager{db: db, store: store}
}

func (m *Manager) key() (string, error) {
	s, err := settings.Load(m.db)
	if err != nil {
		return "", err
	}

	if s.LicenseKey == "" {
		return "", ErrEmptyKey
	}

	return s.LicenseKey, nil
}

// Activate activates the stored key and stores the resulting status.
func (m *Manager) Activate() (string, error) {
	key, err := m.key()
	if err != nil {
		return "", err
	}

	resp, err := m.store.Activate(key)
	if err != nil {
		return "", err
	}

	if err = settings.SetLicenseStatus(m.db, resp.License); err != nil {
		return "", err
	}

	log.Info().Str("status", resp.License).Bool("success", resp.Success).Msg("license activation")

	return resp.License, nil
}

// Deactivate deactivates the stored key. The stored status is removed when the
// store confirms the deactivation.
func (m *Manager) Deactivate() (string, error) {
	key, err := m.key()
	if err != nil {
		return "", err
	}

	resp, err := m.store.Deactivate(key)
	if err != nil {
		return "", err
	}

	if resp.License == StatusDeactivated {
		if err = settings.ClearLicenseStatus(m.db); err != nil {
			return "", err
		}
	}

	log.Info().Str("status", resp.License).Bool("success", resp.Success).Msg("license deactivation")

	return resp.License, nil
}

// Refresh asks the store for the state of the stored key and stores it.
// Without a key there is nothing to check.
func (m *Manager) Refresh() (string, error) {
	key, err := m.key()
	if errors.Is(err, ErrEmptyKey) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	resp, err := m.store.Check(key)
	if err != nil {
		return "", err
	}

	if resp.License == "" {
		return "", nil
	}

	if err = settings.SetLicenseStatus(m.db, resp.License); err != nil {
		return "", err
	}

	return resp.License, nil
}
