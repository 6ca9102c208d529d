package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/internal/storage"
	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

var (
	// ErrUnauthenticated is returned by user-scoped operations when the
	// context carries no identity.
	ErrUnauthenticated = errors.New("service: unauthenticated")
	ErrNotFound        = storage.ErrNotFound
	// ErrInvalidForm rejects create-form payloads. It matches
	// submission.ErrValidationFailed.
	ErrInvalidForm = fmt.Errorf("service: invalid form: %w", submission.ErrValidationFailed)
	// ErrNoSession is returned when no designer session is open for a form.
	ErrNoSession = fmt.Errorf("service: designer session: %w", storage.ErrNotFound)
)

// FormError lists the fields of a rejected form payload.
type FormError struct {
	Issues []elements.Issue
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+" "+issue.Message)
	}
	return ErrInvalidForm.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FormError) Unwrap() error {
	return ErrInvalidForm
}
