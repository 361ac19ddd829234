package repository

import (
	"github.com/admintools/user-management-api/internal/models"
)

// ListQuery holds search, sort and paging options for listing entities.
type ListQuery struct {
	SearchTerm string
	SortColumn string
	SortOrder  string
	Page       int
	PageSize   int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// List retrieves users with filtering, sorting and pagination
	List(query ListQuery) ([]models.User, int64, error)

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Create creates a new user; the store-assigned ID is set on the model
	Create(user *models.User) error

	// Update overwrites username and password hash of an existing user
	Update(user *models.User) (*models.User, error)

	// Delete removes a user and its permission assignments
	Delete(id uint64) error
}

// PermissionRepository defines the interface for permission data access
type PermissionRepository interface {
	// List retrieves permissions with filtering, sorting and pagination
	List(query ListQuery) ([]models.Permission, int64, error)

	// ListForUser lists all permissions assigned to the given user
	ListForUser(userID uint64) ([]models.Permission, error)

	// FindByID finds a permission by ID
	FindByID(id uint64) (*models.Permission, error)

	// Create creates a new permission; the store-assigned ID is set on the model
	Create(permission *models.Permission) error

	// Update overwrites code and description of an existing permission
	Update(permission *models.Permission) (*models.Permission, error)

	// Delete removes a permission and its user assignments
	Delete(id uint64) error
}

// UserPermissionRepository defines the interface for the assignment join table
type UserPermissionRepository interface {
	// Create inserts an assignment row
	Create(assignment *models.UserPermission) error

	// Find finds the assignment for a (user, permission) pair
	Find(userID, permissionID uint64) (*models.UserPermission, error)

	// Delete removes the assignment for a (user, permission) pair
	Delete(userID, permissionID uint64) error
}
