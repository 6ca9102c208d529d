package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/storage"
	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

// PublicForm is what anonymous visitors of a shared form receive.
type PublicForm struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ShareURL    string       `json:"shareURL"`
	Layout      model.Layout `json:"layout"`
}

// Public implements the anonymous operations behind a share URL. Only
// published forms are reachable.
type Public struct {
	store    FormStore
	registry *elements.Registry
	logger   *zap.Logger
}

func NewPublic(store FormStore, opts ...Option) *Public {
	o := newOptions(opts)
	return &Public{store: store, registry: o.registry, logger: o.logger}
}

func (s *Public) Registry() *elements.Registry {
	return s.registry
}

func (s *Public) decode(form storage.Form) (PublicForm, error) {
	l, err := layout.Deserialize([]byte(form.Content), s.registry)
	if err != nil {
		return PublicForm{}, fmt.Errorf("service: form %s: %w", form.ShareURL, err)
	}
	return PublicForm{
		Name:        form.Name,
		Description: form.Description,
		ShareURL:    form.ShareURL,
		Layout:      l,
	}, nil
}

// Open counts a visit and returns the form layout.
func (s *Public) Open(ctx context.Context, shareURL string) (PublicForm, error) {
	form, err := s.store.IncrementVisits(ctx, shareURL)
	if err != nil {
		return PublicForm{}, err
	}
	return s.decode(form)
}

// Form returns the form layout without counting a visit.
func (s *Public) Form(ctx context.Context, shareURL string) (PublicForm, error) {
	form, err := s.store.FormByShareURL(ctx, shareURL)
	if err != nil {
		return PublicForm{}, err
	}
	return s.decode(form)
}

// Submit validates values against the form layout and stores the cleaned
// values. A rejected submission returns submission.FieldErrors.
func (s *Public) Submit(ctx context.Context, shareURL string, values submission.Values) (submission.Values, error) {
	form, err := s.Form(ctx, shareURL)
	if err != nil {
		return nil, err
	}
	if err := submission.Validate(form.Layout, s.registry, values); err != nil {
		return nil, err
	}

	cleaned := submission.Clean(form.Layout, s.registry, values)
	content, err := submission.Encode(cleaned)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.AppendSubmission(ctx, shareURL, content)
	if err != nil {
		return nil, err
	}
	s.logger.Info("submission stored",
		zap.String("share_url", shareURL),
		zap.Uint("submission_id", stored.ID),
	)
	return cleaned, nil
}
