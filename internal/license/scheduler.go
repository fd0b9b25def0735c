package license

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// NewScheduler returns a cron running Refresh on schedule. The caller starts it.
// An empty schedule disables the check and returns nil.
func NewScheduler(schedule string, m *Manager) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil //nolint:nilnil
	}

	c := cron.New()

	if _, err := c.AddFunc(schedule, func() { refreshJob(m) }); err != nil {
		return nil, err
	}

	log.Info().Str("schedule", schedule).Msg("license check scheduled")

	return c, nil
}

func refreshJob(m *Manager) {
	status, err := m.Refresh()
	if err != nil {
		log.Error().Err(err).Msg("license check failed")
		return
	}

	log.Debug().Str("status", status).Msg("license checked")
}
