package daemon

import (
	"errors"

	"github.com/dchest/uniuri"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/auth"
	"github.com/render-shortcodes/render/internal/config"
	"github.com/render-shortcodes/render/internal/db/models"
)

const generatedPasswordLen = 20

// seed creates the roles and, on an empty user table, the bootstrap administrator.
func seed(cfg *config.Config, db *gorm.DB) error {
	service := auth.NewService(db)

	adminRole, err := service.EnsureRole(auth.RoleAdministrator, "Manages shortcodes, settings and the license",
		auth.PermManageOptions, auth.PermEditPosts)
	if err != nil {
		return err
	}

	if _, err = service.EnsureRole(auth.RoleEditor, "Uses shortcodes in the editor", auth.PermEditPosts); err != nil {
		return err
	}

	var count int64
	if err = db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	username := cfg.Admin.Username
	if username == "" {
		username = "admin"
	}

	password := cfg.Admin.Password
	if password == "" {
		password = uniuri.NewLen(generatedPasswordLen)

		log.Warn().Str("username", username).Str("password", password).
			Msg("created administrator with a generated password, change it after the first login")
	}

	_, err = auth.NewLocalProvider(db).CreateUser(username, cfg.Admin.Email, password, "", adminRole.ID)
	if errors.Is(err, auth.ErrUserNameOrEmailExists) {
		return nil
	}

	if err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("administrator created")

	return nil
}
