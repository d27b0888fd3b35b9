package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterRequest extends credentials with an optional contact address.
type RegisterRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest asks for a reset link.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// SetPasswordRequest carries the new password for a reset link.
type SetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// SignupRequest opens an account that is confirmed by mail.
type SignupRequest struct {
	Login string `json:"login" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// ChangePasswordRequest replaces the password of the signed-in user.
type ChangePasswordRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}
