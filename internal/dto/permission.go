package dto

import (
	"time"

	"github.com/admintools/user-management-api/internal/models"
)

// PermissionRequest is the request contract for creating or updating a permission.
type PermissionRequest struct {
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description" binding:"required,min=10,max=100"`
}

// PermissionDTO represents a permission in API responses
type PermissionDTO struct {
	ID          uint64    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionListResponse represents a paginated list of permissions
type PermissionListResponse struct {
	Items      []PermissionDTO `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalCount int64           `json:"totalCount"`
}

// ToPermission converts a PermissionRequest to a Permission model
func ToPermission(req PermissionRequest) models.Permission {
	return models.Permission{
		Code:        req.Code,
		Description: req.Description,
	}
}

// ToPermissionDTO converts a Permission model to PermissionDTO
func ToPermissionDTO(permission models.Permission) PermissionDTO {
	return PermissionDTO{
		ID:          permission.ID,
		Code:        permission.Code,
		Description: permission.Description,
		CreatedAt:   permission.CreatedAt,
		UpdatedAt:   permission.UpdatedAt,
	}
}

// ToPermissionDTOs converts a slice of permissions to DTOs
func ToPermissionDTOs(permissions []models.Permission) []PermissionDTO {
	items := make([]PermissionDTO, len(permissions))
	for i, permission := range permissions {
		items[i] = ToPermissionDTO(permission)
	}
	return items
}

// ToPermissionListResponse converts a slice of permissions to PermissionListResponse
func ToPermissionListResponse(permissions []models.Permission, page, pageSize int, totalCount int64) PermissionListResponse {
	return PermissionListResponse{
		Items:      ToPermissionDTOs(permissions),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
