package dto

// RegisterRequest captures the registration payload. Every field is required;
// role defaults to INSTRUCTOR when omitted.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=ADMIN INSTRUCTOR admin instructor"`
	DepartmentID    uint   `json:"department" validate:"required"`
}

// LoginRequest carries the credential pair.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the bearer token alongside the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
