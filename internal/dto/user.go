package dto

import (
	"time"

	"github.com/admintools/user-management-api/internal/models"
)

// UserRequest is the request contract for creating or updating a user.
type UserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,password"`
	Status   *bool  `json:"status" binding:"required"`
}

// UserDTO represents a user in API responses. The password hash never leaves
// the persistence layer.
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Items      []UserDTO `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalCount int64     `json:"totalCount"`
}

// ToUser converts a UserRequest to a User model with the given password hash
func ToUser(req UserRequest, passwordHash string) models.User {
	user := models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	return user
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserListResponse converts a slice of users to UserListResponse
func ToUserListResponse(users []models.User, page, pageSize int, totalCount int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}

	return UserListResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
