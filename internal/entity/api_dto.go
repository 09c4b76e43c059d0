package entity

import "encoding/json"

// ErrorResponse is the body of every non-2xx JSON API reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UploadResponse is the JSON API view of a finished batch.
type UploadResponse struct {
	ProductFolder string `json:"product_folder"`
	UploadOutcome
	Notices []Notice `json:"notices"`
}

// UpdateContentRequest is the JSON API body for an index refresh.
type UpdateContentRequest struct {
	ProductFolder string `json:"product_folder"`
	Specific      bool   `json:"specific"`
}

// UpdateContentResponse carries the backend reply untouched.
type UpdateContentResponse struct {
	Notice          Notice          `json:"notice"`
	BackendResponse json.RawMessage `json:"backend_response"`
}

type SearchAPIResponse struct {
	*SearchView
	Notice Notice `json:"notice"`
}
