package t4g

// ErrorResponse is the JSON error body returned by the backend on non-2xx.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
