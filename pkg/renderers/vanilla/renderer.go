package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

const (
	formTemplate    = "templates/form.tmpl"
	genericTemplate = "templates/elements/generic.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	partials         map[model.ElementType]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPartial renders elements of tag with the named template instead of the
// built-in one.
func WithPartial(tag model.ElementType, name string) Option {
	return func(cfg *config) {
		if tag == "" || name == "" {
			return
		}
		cfg.partials[tag] = name
	}
}

// Renderer produces a plain HTML form for a layout.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	partials  map[model.ElementType]string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		partials:   defaultPartials(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, partials: cfg.partials}, nil
}

func defaultPartials() map[model.ElementType]string {
	tags := []model.ElementType{
		model.TitleField,
		model.SubTitleField,
		model.ParagraphField,
		model.SpacerField,
		model.TextField,
		model.NumberField,
		model.TextAreaField,
		model.DateField,
		model.SelectField,
		model.CheckboxField,
	}
	out := make(map[model.ElementType]string, len(tags))
	for _, tag := range tags {
		out[tag] = "templates/elements/" + string(tag) + ".tmpl"
	}
	return out
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits one partial per element, in layout order, inside the form
// chrome. Attributes missing from an element fall back to its variant
// defaults. Elements flagged in options.Errors are marked invalid.
func (r *Renderer) Render(ctx context.Context, layout model.Layout, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	registry := options.ResolvedRegistry()

	rendered := make([]string, 0, len(layout))
	for _, element := range layout {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		variant, err := registry.Lookup(element.Type)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: element %q: %w", element.ID, err)
		}

		partial, ok := r.partials[element.Type]
		if !ok {
			partial = genericTemplate
		}
		html, err := r.templates.RenderTemplate(partial, elementView(variant.Resolve(element), variant.Input(), options))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: element %q: %w", element.ID, err)
		}
		rendered = append(rendered, html)
	}

	hidden := make([]map[string]any, 0, len(options.Hidden))
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"title":        options.Title,
		"description":  options.Description,
		"action":       options.Action,
		"submit_label": options.ResolvedSubmitLabel(),
		"hidden":       hidden,
		"elements":     rendered,
		"classes": map[string]any{
			"form":    string(ClassForm),
			"header":  string(ClassHeader),
			"actions": string(ClassActions),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func elementView(element model.ElementInstance, input bool, options render.RenderOptions) map[string]any {
	attrs := element.Attributes
	value := options.Values[element.ID]
	message, invalid := options.Errors[element.ID]

	fieldClass := string(ClassField)
	if invalid {
		fieldClass += " " + string(ClassInvalid)
	}

	choices := attrs.Strings(model.AttrOptions)
	if choices == nil {
		choices = []string{}
	}

	return map[string]any{
		"id":          element.ID,
		"name":        element.ID,
		"type":        string(element.Type),
		"input":       input,
		"control_id":  "fb-" + element.ID,
		"label":       attrs.String(model.AttrLabel),
		"helper_text": attrs.String(model.AttrHelperText),
		"placeholder": attrs.String(model.AttrPlaceholder),
		"required":    attrs.Bool(model.AttrRequired),
		"title":       attrs.String(model.AttrTitle),
		"text_html":   sanitizeText(attrs.String(model.AttrText)),
		"height":      attrs.Int(model.AttrHeight),
		"rows":        attrs.Int(model.AttrRows),
		"options":     choices,
		"value":       value,
		"checked":     value == "true",
		"invalid":     invalid,
		"error":       message,
		"field_class": fieldClass,
		"error_class": string(ClassError),
	}
}
