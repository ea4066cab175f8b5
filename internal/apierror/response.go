package apierror

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the RFC 9457 media type
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes problem as application/problem+json, adding
// Retry-After when the problem carries one
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}
	c.JSON(problem.Status, problem)
}

// GetRequestID returns the ID set by the request logger, falling back to the inbound header
func GetRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError reports every failed field at once
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	p := New(TypeValidation, requestID, "One or more fields failed validation")
	p.Errors = errors
	return p
}

func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	p := New(TypeNotFound, requestID, fmt.Sprintf("%s with ID '%s' was not found", resource, id))
	p.UserMessage = fmt.Sprintf("The requested %s could not be found", resource)
	return p
}

func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	p := New(TypeRateLimit, requestID, fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter))
	p.RetryAfter = &retryAfter
	return p
}

// NewInternalError never carries the cause; log it server-side instead
func NewInternalError(requestID string) *ProblemDetails {
	return New(TypeInternal, requestID, "An unexpected error occurred")
}

func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	p := New(TypeBadRequest, requestID, detail)
	p.UserMessage = userMessage
	return p
}

func NewUnauthorizedError(requestID string) *ProblemDetails {
	p := New(TypeUnauthorized, requestID, "Authentication is required to access this resource")
	p.Action = "authenticate"
	return p
}

func NewInvalidUUIDError(requestID, field, value string) *ProblemDetails {
	p := New(TypeInvalidUUID, requestID, fmt.Sprintf("Invalid UUID format for field '%s': '%s'", field, value))
	p.Errors = []FieldError{{Field: field, Message: "must be a valid UUID", Code: "invalid_uuid"}}
	return p
}

// NewUpstreamError is a 502 for Supabase failures. Like NewInternalError it
// hides the upstream message.
func NewUpstreamError(requestID string) *ProblemDetails {
	return New(TypeUpstream, requestID, "The data backend returned an error")
}
