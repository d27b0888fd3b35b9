package dto

// ErrorResponse is returned by endpoints that explain a refusal.
type ErrorResponse struct {
	Error string `json:"error"`
}
