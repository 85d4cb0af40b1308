package dto

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest requires the name key; an empty string clears the name.
type UpdateProfileRequest struct {
	Name *string `json:"name" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ProfileResponse struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
