// Package apierror renders RFC 9457 problem details
// (https://www.rfc-editor.org/rfc/rfc9457.html) for the habitmood API.
package apierror

// ProblemDetails is the body of every error response
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`

	// Extensions
	RequestID   string       `json:"request_id,omitempty"`
	UserMessage string       `json:"user_message,omitempty"` // safe to show in the UI
	RetryAfter  *int         `json:"retry_after,omitempty"`  // seconds, mirrors the Retry-After header
	Action      string       `json:"action,omitempty"`       // "authenticate" on 401
	Errors      []FieldError `json:"errors,omitempty"`
}

// FieldError is one failed field of a validation problem
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
