package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/admintools/user-management-api/internal/models"
	"github.com/admintools/user-management-api/internal/repository"
)

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrPermissionNotFound        = errors.New("permission not found")
	ErrPermissionAlreadyAssigned = errors.New("permission is already assigned to this user")
)

// UserPermissionService orchestrates the assignment join table with existence
// checks against the user and permission repositories.
type UserPermissionService struct {
	userRepo           repository.UserRepository
	permissionRepo     repository.PermissionRepository
	userPermissionRepo repository.UserPermissionRepository
}

// NewUserPermissionService creates a new UserPermissionService.
func NewUserPermissionService(
	userRepo repository.UserRepository,
	permissionRepo repository.PermissionRepository,
	userPermissionRepo repository.UserPermissionRepository,
) *UserPermissionService {
	return &UserPermissionService{
		userRepo:           userRepo,
		permissionRepo:     permissionRepo,
		userPermissionRepo: userPermissionRepo,
	}
}

// Attach assigns a permission to a user. The user check runs before the
// permission check, which is observable when both are missing.
func (s *UserPermissionService) Attach(userID, permissionID uint64) error {
	if err := s.ensureUserAndPermissionExist(userID, permissionID); err != nil {
		return err
	}

	if _, err := s.userPermissionRepo.Find(userID, permissionID); err == nil {
		return ErrPermissionAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing assignment: %w", err)
	}

	assignment := &models.UserPermission{
		UserID:       userID,
		PermissionID: permissionID,
	}
	if err := s.userPermissionRepo.Create(assignment); err != nil {
		// The pre-check is not atomic with the insert. A concurrent attach of
		// the same pair loses the race at the unique index and is reported as
		// the same conflict as a failed pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPermissionAlreadyAssigned
		}
		return fmt.Errorf("failed to assign permission: %w", err)
	}

	return nil
}

// Detach removes a permission from a user. A missing assignment is a no-op;
// both referenced entities must still exist.
func (s *UserPermissionService) Detach(userID, permissionID uint64) error {
	if err := s.ensureUserAndPermissionExist(userID, permissionID); err != nil {
		return err
	}

	if _, err := s.userPermissionRepo.Find(userID, permissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find assignment: %w", err)
	}

	if err := s.userPermissionRepo.Delete(userID, permissionID); err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}

	return nil
}

// ListForUser returns all permissions assigned to the user. No existence check
// is performed; an unknown user yields an empty slice.
func (s *UserPermissionService) ListForUser(userID uint64) ([]models.Permission, error) {
	permissions, err := s.permissionRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user permissions: %w", err)
	}
	return permissions, nil
}

func (s *UserPermissionService) ensureUserAndPermissionExist(userID, permissionID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.permissionRepo.FindByID(permissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPermissionNotFound
		}
		return fmt.Errorf("failed to find permission: %w", err)
	}

	return nil
}
