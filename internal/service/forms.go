package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/auth"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/internal/storage"
	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

// CreateFormInput is the payload of a new form. The name is trimmed before
// it is checked.
type CreateFormInput struct {
	Name        string `json:"name" binding:"required,min=4,max=100"`
	Description string `json:"description" binding:"max=500"`
}

func (in *CreateFormInput) UnmarshalJSON(data []byte) error {
	type payload CreateFormInput
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*in = CreateFormInput(p)
	in.Name = strings.TrimSpace(in.Name)
	return nil
}

// Validate checks the payload against its binding tags and returns a
// *FormError when it is rejected.
func (in CreateFormInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return NewFormError(binding.Validator.ValidateStruct(in))
}

// NewFormError converts validator errors into a *FormError. Other errors are
// returned unchanged and nil stays nil.
func NewFormError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	issues := make([]elements.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, elements.Issue{
			Field:   strings.ToLower(fe.Field()),
			Message: issueMessage(fe),
		})
	}
	return &FormError{Issues: issues}
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Option configures the services.
type Option func(*options)

type options struct {
	registry *elements.Registry
	logger   *zap.Logger
}

func WithRegistry(registry *elements.Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.registry = registry
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logging.OrNop(logger)
	}
}

func newOptions(opts []Option) options {
	o := options{registry: elements.Default(), logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Forms implements the owner-facing form operations. Every method requires an
// authenticated user in the context.
type Forms struct {
	store    FormStore
	registry *elements.Registry
	logger   *zap.Logger
}

func NewForms(store FormStore, opts ...Option) *Forms {
	o := newOptions(opts)
	return &Forms{store: store, registry: o.registry, logger: o.logger}
}

// Registry returns the element registry layouts are checked against.
func (s *Forms) Registry() *elements.Registry {
	return s.registry
}

func currentUser(ctx context.Context) (auth.User, error) {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return auth.User{}, ErrUnauthenticated
	}
	return user, nil
}

func (s *Forms) Create(ctx context.Context, in CreateFormInput) (storage.Form, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return storage.Form{}, err
	}
	if err := in.Validate(); err != nil {
		return storage.Form{}, err
	}
	form, err := s.store.CreateForm(ctx, user.ID, strings.TrimSpace(in.Name), in.Description)
	if err != nil {
		return storage.Form{}, err
	}
	s.logger.Info("form created", zap.Uint("form_id", form.ID), zap.String("user_id", user.ID))
	return form, nil
}

func (s *Forms) Get(ctx context.Context, id uint) (storage.Form, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return storage.Form{}, err
	}
	return s.store.GetForm(ctx, user.ID, id)
}

// List returns the forms of the current user, newest first.
func (s *Forms) List(ctx context.Context) ([]storage.Form, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListForms(ctx, user.ID)
}

// Stats aggregates visits and submissions over the current user's forms.
func (s *Forms) Stats(ctx context.Context) (storage.Stats, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return storage.Stats{}, err
	}
	return s.store.Stats(ctx, user.ID)
}

// Layout loads and decodes the persisted layout of a form.
func (s *Forms) Layout(ctx context.Context, id uint) (model.Layout, error) {
	form, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	l, err := layout.Deserialize([]byte(form.Content), s.registry)
	if err != nil {
		return nil, fmt.Errorf("service: form %d: %w", id, err)
	}
	return l, nil
}

// SaveContent serializes l and stores it as the form content.
func (s *Forms) SaveContent(ctx context.Context, id uint, l model.Layout) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	data, err := layout.Serialize(l)
	if err != nil {
		return err
	}
	if err := s.store.UpdateContent(ctx, user.ID, id, string(data)); err != nil {
		return err
	}
	s.logger.Info("form content saved", zap.Uint("form_id", id), zap.Int("elements", len(l)))
	return nil
}

// SaveRawContent checks a serialized layout against the registry before
// storing it verbatim in canonical form.
func (s *Forms) SaveRawContent(ctx context.Context, id uint, content []byte) (model.Layout, error) {
	l, err := layout.Deserialize(content, s.registry)
	if err != nil {
		return nil, err
	}
	if err := s.SaveContent(ctx, id, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Forms) Publish(ctx context.Context, id uint) (storage.Form, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return storage.Form{}, err
	}
	form, err := s.store.Publish(ctx, user.ID, id)
	if err != nil {
		return storage.Form{}, err
	}
	s.logger.Info("form published", zap.Uint("form_id", id), zap.String("share_url", form.ShareURL))
	return form, nil
}

// Submissions returns the submissions table of a form.
func (s *Forms) Submissions(ctx context.Context, id uint) (submission.Table, error) {
	l, err := s.Layout(ctx, id)
	if err != nil {
		return submission.Table{}, err
	}
	user, err := currentUser(ctx)
	if err != nil {
		return submission.Table{}, err
	}
	stored, err := s.store.ListSubmissions(ctx, user.ID, id)
	if err != nil {
		return submission.Table{}, err
	}

	records := make([]submission.Record, 0, len(stored))
	for _, sub := range stored {
		values, err := submission.Decode(sub.Content)
		if err != nil {
			s.logger.Warn("skipping unreadable submission", zap.Uint("submission_id", sub.ID), zap.Error(err))
			continue
		}
		records = append(records, submission.Record{Values: values, SubmittedAt: sub.CreatedAt})
	}
	return submission.BuildTable(l, s.registry, records), nil
}
