package handlers

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/JonnyWalker81/habitmood/backend/internal/apierror"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/JonnyWalker81/habitmood/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// userID returns the authenticated user, writing a 401 when there is none
func userID(c *gin.Context) (string, bool) {
	id := c.GetString("user_id")
	if id == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return id, true
}

// fieldError builds a single-field validation problem
func fieldError(c *gin.Context, field, message, code string) {
	apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
		{Field: field, Message: message, Code: code},
	}))
}

// writeBindError reports every failed binding rule at once, or a bad-request
// problem when the body is not valid JSON.
func writeBindError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	fields := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierror.FieldError{
			Field:   jsonFieldName(fe),
			Message: validationMessage(fe),
			Code:    fe.Tag(),
		})
	}
	apierror.WriteProblem(c, apierror.NewValidationError(requestID, fields))
}

// writeServiceError maps a service error to a problem response.
// resource and id describe what a not-found refers to.
func writeServiceError(c *gin.Context, err error, resource, id string) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, resource, id))
	case errors.Is(err, service.ErrInvalidID):
		apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, "id", id))
	case errors.Is(err, service.ErrInvalidDate):
		fieldError(c, "date", service.ErrInvalidDate.Error(), "calendar_date")
	case errors.Is(err, service.ErrInvalidScore):
		fieldError(c, "mood_score", service.ErrInvalidScore.Error(), "range")
	case errors.Is(err, service.ErrInvalidStatus):
		fieldError(c, "status", service.ErrInvalidStatus.Error(), "log_status")
	case errors.Is(err, service.ErrInvalidTimeframe):
		fieldError(c, "timeframe", service.ErrInvalidTimeframe.Error(), "timeframe")
	case isUpstream(err):
		logger.Ctx(c.Request.Context()).Error("upstream request failed",
			logger.Err(err),
			logger.Int("upstream_status", supabase.StatusCode(err)),
		)
		apierror.WriteProblem(c, apierror.NewUpstreamError(requestID))
	default:
		logger.Ctx(c.Request.Context()).Error("request failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

// isUpstream reports whether err came from talking to Supabase
func isUpstream(err error) bool {
	if supabase.StatusCode(err) > 0 {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "calendar_date":
		return "must be a YYYY-MM-DD date"
	case "log_status":
		return "must be done, missed or skipped"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
