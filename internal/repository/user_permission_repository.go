package repository

import (
	"gorm.io/gorm"

	"github.com/admintools/user-management-api/internal/models"
)

// GormUserPermissionRepository is a GORM implementation of UserPermissionRepository
type GormUserPermissionRepository struct {
	db *gorm.DB
}

// NewUserPermissionRepository creates a new UserPermissionRepository
func NewUserPermissionRepository(db *gorm.DB) UserPermissionRepository {
	return &GormUserPermissionRepository{db: db}
}

// Create inserts an assignment row. A duplicate (user, permission) pair
// violates the unique index and surfaces as gorm.ErrDuplicatedKey.
func (r *GormUserPermissionRepository) Create(assignment *models.UserPermission) error {
	return r.db.Create(assignment).Error
}

// Find finds the assignment for a (user, permission) pair
func (r *GormUserPermissionRepository) Find(userID, permissionID uint64) (*models.UserPermission, error) {
	var assignment models.UserPermission
	if err := r.db.Where("user_id = ? AND permission_id = ?", userID, permissionID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Delete removes the assignment for a (user, permission) pair
func (r *GormUserPermissionRepository) Delete(userID, permissionID uint64) error {
	return r.db.Where("user_id = ? AND permission_id = ?", userID, permissionID).
		Delete(&models.UserPermission{}).Error
}
