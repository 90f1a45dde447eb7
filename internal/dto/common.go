package dto

// ListParams holds common token-pagination parameters.
type ListParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ErrorResponse is the structured error payload returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}
