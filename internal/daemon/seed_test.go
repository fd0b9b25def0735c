package daemon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/config"
	"github.com/render-shortcodes/render/internal/db/models"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		DB:    config.DB{GormEngine: config.EngineSQLite, Name: filepath.Join(t.TempDir(), "render.db")},
		Admin: config.Admin{Username: "root", Email: "root@example.com", Password: "s3cret"},
	}
}

func TestOpenMigrates(t *testing.T) {
	db, err := Open(sqliteConfig(t))
	require.NoError(t, err)

	for _, model := range []any{&models.Option{}, &models.Session{}, &models.Role{}, &models.User{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestSeed(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, seed(cfg, db))

	user, err := auth.NewLocalProvider(db).Authenticate("root", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdministrator, user.Role.Name)

	ok, err := auth.NewService(db).HasPermission(user.ID, auth.PermManageOptions)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second run keeps the existing users
	cfg.Admin.Password = "other"
	require.NoError(t, seed(cfg, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var roles int64
	require.NoError(t, db.Model(&models.Role{}).Count(&roles).Error)
	assert.Equal(t, int64(2), roles)
}

func TestSeedGeneratesPassword(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Admin = config.Admin{}

	db, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, seed(cfg, db))

	var user models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	assert.NotEmpty(t, user.Password)
	assert.False(t, user.VerifyPassword(""))
}

func TestSessionStorageSQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := Open(cfg)
	require.NoError(t, err)

	storage, gc, err := sessionStorage(cfg, db)
	require.NoError(t, err)
	require.NotNil(t, storage)
	require.NotNil(t, gc)
	assert.Len(t, gc.Entries(), 1)
}
