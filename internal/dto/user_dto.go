package dto

import (
	"time"

	"github.com/edupulse/course-activity-api/internal/models"
)

// DepartmentResponse serializes a department.
type DepartmentResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewDepartmentResponse converts a department model into a DTO.
func NewDepartmentResponse(department models.Department) DepartmentResponse {
	return DepartmentResponse{ID: department.ID, Name: department.Name}
}

// ProfileResponse serializes the role/department record attached to a user.
type ProfileResponse struct {
	Name       string              `json:"name"`
	Role       string              `json:"role"`
	Department *DepartmentResponse `json:"department"`
	CreatedAt  time.Time           `json:"created_at"`
}

// UserResponse serializes a full user account for admin and self endpoints.
type UserResponse struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	IsActive  bool            `json:"is_active"`
	LastLogin *time.Time      `json:"last_login"`
	Profile   ProfileResponse `json:"profile"`
}

// UserUpdateRequest captures partial admin updates across user and profile.
type UserUpdateRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,min=1"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1"`
	Email        *string `json:"email" validate:"omitempty,email"`
	IsActive     *bool   `json:"is_active"`
	Role         *string `json:"role" validate:"omitempty,oneof=ADMIN INSTRUCTOR admin instructor"`
	DepartmentID *uint   `json:"department_id"`
}

// NewUserResponse converts a user model (with preloaded profile) into a DTO.
func NewUserResponse(user models.User) UserResponse {
	profile := ProfileResponse{
		Name:      user.Profile.Name,
		Role:      string(user.Profile.Role),
		CreatedAt: user.Profile.CreatedAt,
	}
	if user.Profile.Department != nil {
		department := NewDepartmentResponse(*user.Profile.Department)
		profile.Department = &department
	}

	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		Profile:   profile,
	}
}
