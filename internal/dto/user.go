package dto

import (
	"time"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
)

// CreateUserRequest registers a new portal user.
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3"`
	DisplayName string `json:"displayName" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"omitempty,oneof=USER EMPLOYEE ADMIN"`
}

// UpdateUserRequest edits a portal user.
type UpdateUserRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Role        *string `json:"role,omitempty" binding:"omitempty,oneof=USER EMPLOYEE ADMIN"`
}

// LoginRequest carries portal credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed access token for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string    `json:"userID"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to response DTOs.
func ToUserResponses(us []domain.User) []UserResponse {
	responses := make([]UserResponse, len(us))
	for i := range us {
		responses[i] = ToUserResponse(&us[i])
	}
	return responses
}
