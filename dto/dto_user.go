package dto

// ===== Requests =====

type RegisterDTO struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ===== Responses =====

type TokenResponse struct {
	Message string `json:"message,omitempty" example:"User registered successfully"`
	Token   string `json:"token"`
}

type ErrorResponse struct {
	Message string `json:"message" example:"invalid body"`
}
