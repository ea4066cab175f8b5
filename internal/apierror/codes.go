package apierror

import "net/http"

// Problem type URIs, used as the "type" member of every problem response
const (
	TypeValidation   = "urn:habitmood:error:validation"
	TypeNotFound     = "urn:habitmood:error:not_found"
	TypeRateLimit    = "urn:habitmood:error:rate_limit"
	TypeUnauthorized = "urn:habitmood:error:unauthorized"
	TypeInternal     = "urn:habitmood:error:internal"
	TypeUpstream     = "urn:habitmood:error:upstream"
	TypeInvalidUUID  = "urn:habitmood:error:invalid_uuid"
	TypeBadRequest   = "urn:habitmood:error:bad_request"
)

type kind struct {
	title       string
	status      int
	userMessage string
}

var kinds = map[string]kind{
	TypeValidation:   {"Validation Error", http.StatusBadRequest, "Please check your input and try again"},
	TypeNotFound:     {"Resource Not Found", http.StatusNotFound, ""},
	TypeRateLimit:    {"Rate Limit Exceeded", http.StatusTooManyRequests, "Too many requests. Please wait before trying again."},
	TypeUnauthorized: {"Authentication Required", http.StatusUnauthorized, "Please sign in to continue"},
	TypeInternal:     {"Internal Server Error", http.StatusInternalServerError, "Something went wrong. Please try again later."},
	TypeUpstream:     {"Upstream Service Error", http.StatusBadGateway, "We couldn't reach your data. Please try again shortly."},
	TypeInvalidUUID:  {"Invalid UUID Format", http.StatusBadRequest, "Invalid identifier format"},
	TypeBadRequest:   {"Bad Request", http.StatusBadRequest, ""},
}

// New builds a problem of the given type with its registered title, status
// and user message. Unknown types are reported as internal errors.
func New(problemType, requestID, detail string) *ProblemDetails {
	k, ok := kinds[problemType]
	if !ok {
		problemType, k = TypeInternal, kinds[TypeInternal]
	}
	return &ProblemDetails{
		Type:        problemType,
		Title:       k.title,
		Status:      k.status,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: k.userMessage,
	}
}
