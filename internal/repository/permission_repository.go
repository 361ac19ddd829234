package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/admintools/user-management-api/internal/database"
	"github.com/admintools/user-management-api/internal/models"
	"github.com/admintools/user-management-api/internal/utils"
)

// GormPermissionRepository is a GORM implementation of PermissionRepository
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new PermissionRepository
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &GormPermissionRepository{db: db}
}

// List retrieves permissions with filtering, sorting and pagination
func (r *GormPermissionRepository) List(query ListQuery) ([]models.Permission, int64, error) {
	q := r.db.Model(&models.Permission{})

	if strings.TrimSpace(query.SearchTerm) != "" {
		pattern := likePattern(query.SearchTerm)
		q = q.Where("code LIKE ? ESCAPE '\\' OR description LIKE ? ESCAPE '\\'", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortColumn != "" {
		q = q.Order(orderClause(permissionSortColumn(query.SortColumn), query.SortOrder))
	}

	var permissions []models.Permission
	params := utils.PaginationParams{
		Page:     query.Page,
		PageSize: query.PageSize,
		Offset:   (query.Page - 1) * query.PageSize,
	}
	if err := q.Scopes(database.Paginate(params)).Find(&permissions).Error; err != nil {
		return nil, 0, err
	}

	return permissions, total, nil
}

// ListForUser lists all permissions assigned to the given user.
// An unknown user yields an empty slice, not an error.
func (r *GormPermissionRepository) ListForUser(userID uint64) ([]models.Permission, error) {
	var permissions []models.Permission
	err := r.db.Model(&models.Permission{}).
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ?", userID).
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// FindByID finds a permission by ID
func (r *GormPermissionRepository) FindByID(id uint64) (*models.Permission, error) {
	var permission models.Permission
	if err := r.db.First(&permission, id).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

// Create creates a new permission
func (r *GormPermissionRepository) Create(permission *models.Permission) error {
	return r.db.Create(permission).Error
}

// Update overwrites code and description of an existing permission
func (r *GormPermissionRepository) Update(permission *models.Permission) (*models.Permission, error) {
	var current models.Permission
	if err := r.db.First(&current, permission.ID).Error; err != nil {
		return nil, err
	}

	current.Code = permission.Code
	current.Description = permission.Description

	if err := r.db.Save(&current).Error; err != nil {
		return nil, err
	}
	return &current, nil
}

// Delete removes a permission and its user assignments in a transaction
func (r *GormPermissionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Permission{}, id).Error
	})
}

func permissionSortColumn(sortColumn string) string {
	switch strings.ToLower(sortColumn) {
	case "code":
		return "code"
	case "description":
		return "description"
	default:
		return "id"
	}
}
