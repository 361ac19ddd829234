package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/admintools/user-management-api/internal/dto"
	apierrors "github.com/admintools/user-management-api/internal/errors"
	"github.com/admintools/user-management-api/internal/repository"
	"github.com/admintools/user-management-api/internal/services"
	"github.com/admintools/user-management-api/internal/validation"
)

// UserHandler serves the /users resource, including the nested permission
// assignment endpoints.
type UserHandler struct {
	userRepo              repository.UserRepository
	userPermissionService *services.UserPermissionService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository, userPermissionService *services.UserPermissionService) *UserHandler {
	return &UserHandler{
		userRepo:              userRepo,
		userPermissionService: userPermissionService,
	}
}

// ListUsers returns a paged, optionally filtered and sorted list of users
func (h *UserHandler) ListUsers(c *gin.Context) {
	query := listQuery(c)

	users, total, err := h.userRepo.List(query)
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, query.Page, query.PageSize, total))
}

// GetUser returns a single user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser validates the request and returns the generated id
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	passwordHash, err := services.HashPassword(req.Password)
	if err != nil {
		apierrors.InternalError(c, "Failed to process password")
		return
	}

	user := dto.ToUser(req, passwordHash)
	if err := h.userRepo.Create(&user); err != nil {
		apierrors.InternalError(c, "Failed to create user")
		return
	}

	c.JSON(http.StatusOK, user.ID)
}

// UpdateUser overwrites username and password of an existing user.
// Status is not updated here.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	passwordHash, err := services.HashPassword(req.Password)
	if err != nil {
		apierrors.InternalError(c, "Failed to process password")
		return
	}

	user := dto.ToUser(req, passwordHash)
	user.ID = id

	if _, err := h.userRepo.Update(&user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser removes a user. Deletes are idempotent: a missing id is accepted.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.userRepo.Delete(id); err != nil {
		apierrors.InternalError(c, "Failed to delete user")
		return
	}

	c.Status(http.StatusAccepted)
}

// ListUserPermissions returns all permissions assigned to a user.
// The user id path segment is named "id" because gin requires a single
// wildcard name under /users.
func (h *UserHandler) ListUserPermissions(c *gin.Context) {
	userID, err := idParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	permissions, err := h.userPermissionService.ListForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list user permissions")
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionDTOs(permissions))
}

// AddUserPermission assigns a permission to a user
func (h *UserHandler) AddUserPermission(c *gin.Context) {
	userID, permissionID, ok := assignmentParams(c)
	if !ok {
		return
	}

	if err := h.userPermissionService.Attach(userID, permissionID); err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveUserPermission removes a permission from a user. Removing an
// assignment that does not exist is accepted as a no-op.
func (h *UserHandler) RemoveUserPermission(c *gin.Context) {
	userID, permissionID, ok := assignmentParams(c)
	if !ok {
		return
	}

	if err := h.userPermissionService.Detach(userID, permissionID); err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

func assignmentParams(c *gin.Context) (userID, permissionID uint64, ok bool) {
	userID, err := idParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return 0, 0, false
	}

	permissionID, err = idParam(c, "permissionId")
	if err != nil {
		apierrors.BadRequest(c, "Invalid permission id")
		return 0, 0, false
	}

	return userID, permissionID, true
}

func respondAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPermissionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPermissionAlreadyAssigned):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// respondBindingError reports validation failures as a field/error list and
// any other binding failure as a plain 400.
func respondBindingError(c *gin.Context, err error) {
	if fieldErrors := validation.FieldErrorsFrom(err); fieldErrors != nil {
		apierrors.BadRequestWithDetails(c, "Validation failed", fieldErrors)
		return
	}
	apierrors.BadRequest(c, "Invalid request body")
}
