package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/admintools/user-management-api/internal/dto"
	apierrors "github.com/admintools/user-management-api/internal/errors"
	"github.com/admintools/user-management-api/internal/repository"
)

// PermissionHandler serves the /permissions resource.
type PermissionHandler struct {
	permissionRepo repository.PermissionRepository
}

// NewPermissionHandler creates a new PermissionHandler.
func NewPermissionHandler(permissionRepo repository.PermissionRepository) *PermissionHandler {
	return &PermissionHandler{
		permissionRepo: permissionRepo,
	}
}

// ListPermissions returns a paged, optionally filtered and sorted list of permissions
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	query := listQuery(c)

	permissions, total, err := h.permissionRepo.List(query)
	if err != nil {
		apierrors.InternalError(c, "Failed to list permissions")
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionListResponse(permissions, query.Page, query.PageSize, total))
}

// GetPermission returns a single permission by ID
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid permission id")
		return
	}

	permission, err := h.permissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Permission not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch permission")
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionDTO(*permission))
}

// CreatePermission validates the request and returns the generated id
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req dto.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	permission := dto.ToPermission(req)
	if err := h.permissionRepo.Create(&permission); err != nil {
		apierrors.InternalError(c, "Failed to create permission")
		return
	}

	c.JSON(http.StatusOK, permission.ID)
}

// UpdatePermission overwrites code and description of an existing permission
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid permission id")
		return
	}

	var req dto.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	permission := dto.ToPermission(req)
	permission.ID = id

	if _, err := h.permissionRepo.Update(&permission); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Permission not found")
			return
		}
		apierrors.InternalError(c, "Failed to update permission")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePermission removes a permission. Deletes are idempotent.
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid permission id")
		return
	}

	if err := h.permissionRepo.Delete(id); err != nil {
		apierrors.InternalError(c, "Failed to delete permission")
		return
	}

	c.Status(http.StatusAccepted)
}
