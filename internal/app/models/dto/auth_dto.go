package dto

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"sensei@tatame.app"`
	Password string `json:"password" binding:"required,min=8" example:"********"`
}

// RefreshTokenRequest is the payload for POST /auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdatePasswordRequest is the payload for PUT /auth/password
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`        // Access token lifetime, seconds
	RefreshExpiresIn int    `json:"refreshExpiresIn"` // Refresh token lifetime, seconds
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// UpdateProfileRequest is the payload for PUT /me
type UpdateProfileRequest struct {
	FullName  *string `json:"fullName,omitempty" binding:"omitempty,min=2"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty" binding:"omitempty,url"`
}
