package rest

// ErrorResponse is the shared shape for JSON error bodies.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
