package submission

import "mime/multipart"

// Input is the parsed multipart form payload of one submission request.
type Input struct {
	Title   string
	Kind    string
	Body    string
	Excerpt string
	Image   *multipart.FileHeader
}

// FieldError is a per-field validation message.
type FieldError struct {
	FieldName string `json:"field_name"`
	Message   string `json:"message"`
}

// Result is the structured outcome returned for one submission. Data holds
// either a []FieldError (validation failure) or a map with post_id and
// optionally attachment_id.
type Result struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func validationResult(errs ...FieldError) Result {
	return Result{Status: false, Message: "validation error", Data: errs}
}

func errorResult(message string) Result {
	return Result{Status: false, Message: message}
}
