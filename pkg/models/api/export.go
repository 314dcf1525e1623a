package api

// ErrorResponse is the JSON error body for the export endpoints. Fields
// carries per-parameter validation messages when present.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
