package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/service"
	"github.com/goliatone/go-formbuilder/pkg/designer"
	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

// phase tells whether a malformed layout came from the client or from
// storage.
type phase int

const (
	phaseWrite phase = iota
	phaseLoad
)

// StatusError pairs an error with the HTTP status it maps to.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

// classify maps a service error to its HTTP status and public message.
func classify(err error, p phase) StatusError {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return StatusError{Code: http.StatusUnauthorized, Message: "authentication required", Err: err}
	case errors.Is(err, service.ErrNotFound):
		return StatusError{Code: http.StatusNotFound, Message: "not found", Err: err}
	case errors.Is(err, layout.ErrMalformedLayout):
		if p == phaseLoad {
			return StatusError{Code: http.StatusInternalServerError, Message: "something went wrong", Err: err}
		}
		return StatusError{Code: http.StatusUnprocessableEntity, Message: err.Error(), Err: err}
	case errors.Is(err, submission.ErrValidationFailed):
		return StatusError{Code: http.StatusUnprocessableEntity, Message: "validation failed", Err: err}
	case errors.Is(err, designer.ErrInvalidTarget):
		return StatusError{Code: http.StatusConflict, Message: err.Error(), Err: err}
	case errors.Is(err, elements.ErrUnknownVariant):
		return StatusError{Code: http.StatusBadRequest, Message: err.Error(), Err: err}
	default:
		return StatusError{Code: http.StatusInternalServerError, Message: "something went wrong", Err: err}
	}
}

// details returns the structured part of a validation error, if any.
func details(err error) any {
	var fieldErrs submission.FieldErrors
	if errors.As(err, &fieldErrs) {
		return gin.H{"errors": fieldErrs}
	}
	var propErr *designer.PropertyError
	if errors.As(err, &propErr) {
		return gin.H{"elementId": propErr.ElementID, "issues": propErr.Issues}
	}
	var formErr *service.FormError
	if errors.As(err, &formErr) {
		return gin.H{"issues": formErr.Issues}
	}
	return nil
}

func (s *Server) abort(c *gin.Context, err error, p phase) {
	se := classify(err, p)
	if se.Code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	fail(c, se.Code, 0, se.Message, details(err))
}
