package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/db/models"
)

// Service provides authorization functionality.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasPermission checks if the role of a user has a specific permission.
func (s *Service) HasPermission(userID uint64, permission string) (bool, error) {
	var count int64

	err := s.db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND users.active = ? AND permissions.name = ?", userID, true, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return count > 0, nil
}

// HasAnyPermission checks if a user has at least one of the given permissions.
func (s *Service) HasAnyPermission(userID uint64, permissions []string) (bool, error) {
	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if has {
			return true, nil
		}
	}

	return false, nil
}

// GetUserPermissions retrieves all permissions of the role of a user.
func (s *Service) GetUserPermissions(userID uint64) ([]string, error) {
	var permissions []string

	err := s.db.Table("permissions").
		Select("DISTINCT permissions.name").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ?", userID).
		Order("permissions.name").
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}

// EnsureRole creates the role if missing and grants it exactly the given permissions,
// creating missing permissions on the way.
func (s *Service) EnsureRole(name, description string, permissions ...string) (*models.Role, error) {
	var role models.Role

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.WhereNameIs, name).
			Attrs(models.Role{Description: description, IsSystem: true}).
			FirstOrCreate(&role, models.Role{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", name, err)
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to reset permissions of role %s: %w", name, err)
		}

		for _, permName := range permissions {
			var perm models.Permission

			if err := tx.Where(models.WhereNameIs, permName).
				FirstOrCreate(&perm, models.Permission{Name: permName, Description: Descriptions[permName]}).Error; err != nil {
				return fmt.Errorf("failed to create permission %s: %w", permName, err)
			}

			if err := tx.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error; err != nil {
				return fmt.Errorf("failed to grant %s to %s: %w", permName, name, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &role, nil
}

// AssignRoleToUser assigns a role to a user.
func (s *Service) AssignRoleToUser(userID uint64, roleID uint) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID).Error
}
