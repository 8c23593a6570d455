package dto

import (
	"time"

	"github.com/Payphone-Digital/auth-service/internal/model"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse copies the public fields of a user; the password hash is never carried over
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ListUsersQuery is the parsed query of GET /api/users
type ListUsersQuery struct {
	Search string
	SortBy string
	Order  string
	Limit  int
	Offset int
}
