package service

import (
	"context"

	"github.com/goliatone/go-formbuilder/internal/storage"
)

// FormStore is the persistence collaborator. *storage.Repository implements
// it.
type FormStore interface {
	CreateForm(ctx context.Context, userID, name, description string) (storage.Form, error)
	GetForm(ctx context.Context, userID string, id uint) (storage.Form, error)
	ListForms(ctx context.Context, userID string) ([]storage.Form, error)
	UpdateContent(ctx context.Context, userID string, id uint, content string) error
	Publish(ctx context.Context, userID string, id uint) (storage.Form, error)
	IncrementVisits(ctx context.Context, shareURL string) (storage.Form, error)
	FormByShareURL(ctx context.Context, shareURL string) (storage.Form, error)
	AppendSubmission(ctx context.Context, shareURL, content string) (storage.FormSubmission, error)
	ListSubmissions(ctx context.Context, userID string, id uint) ([]storage.FormSubmission, error)
	Stats(ctx context.Context, userID string) (storage.Stats, error)
}

var _ FormStore = (*storage.Repository)(nil)
