package dto

// ── auth module DTOs ──

// RegisterRequest creates a directory profile.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=255"`
	Email    string `json:"email"     binding:"required,email"`
	Password string `json:"password"  binding:"required,min=8,max=72"`
	Role     string `json:"role"      binding:"omitempty,oneof=docente coordenador"`
}

// LoginRequest authenticates by institutional email.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse carries a fresh token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // access token lifetime in seconds
}

// ProfileResponse is the directory view of a user.
type ProfileResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	InstitutionEmail string `json:"institution_email"`
	Role             string `json:"role"`
	CreatedAt        string `json:"created_at"`
}
