package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// FieldErrorResponse carries per-field validation failures for form
// submissions.
type FieldErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// QueryMeta mirrors the storefront's "Showing N of Total" counters: Showing
// is the windowed item count, TotalItems the filtered set size before
// windowing.
type QueryMeta struct {
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
	Showing    int `json:"showing"`
	TotalItems int `json:"total_items"`
}

type PaginationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Meta    QueryMeta   `json:"meta"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
