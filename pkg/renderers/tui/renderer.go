package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

const noneOption = "(none)"

// Renderer fills a layout interactively and serializes the collected
// submission.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer. Without WithPromptDriver it talks to the terminal.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  3,
		theme:        Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render prompts for every input element and returns the serialized values.
func (r *Renderer) Render(ctx context.Context, layout model.Layout, options render.RenderOptions) ([]byte, error) {
	values, err := r.Fill(ctx, layout, options)
	if err != nil {
		return nil, err
	}

	switch r.outputFormat {
	case OutputFormatPrettyText:
		registry := options.ResolvedRegistry()
		var b strings.Builder
		for _, element := range layout {
			if _, ok := values[element.ID]; !ok {
				continue
			}
			if resolved, err := registry.Resolve(element); err == nil {
				element = resolved
			}
			label := element.Attributes.String(model.AttrLabel)
			if label == "" {
				label = element.ID
			}
			fmt.Fprintf(&b, "%s: %s\n", label, values[element.ID])
		}
		return []byte(b.String()), nil
	default:
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}
}

// Fill walks the layout in order. Static elements are printed, input elements
// are prompted until their variant accepts the value. The result is validated
// once more as a whole before it is returned.
func (r *Renderer) Fill(ctx context.Context, layout model.Layout, options render.RenderOptions) (submission.Values, error) {
	registry := options.ResolvedRegistry()

	if options.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+options.Title); err != nil {
			return nil, err
		}
	}

	values := submission.Values{}
	for _, element := range layout {
		variant, err := registry.Lookup(element.Type)
		if err != nil {
			return nil, fmt.Errorf("tui: element %q: %w", element.ID, err)
		}
		element = variant.Resolve(element)
		if !variant.Input() {
			if err := r.show(ctx, element); err != nil {
				return nil, err
			}
			continue
		}

		value, err := r.ask(ctx, variant, element, options.Values[element.ID])
		if err != nil {
			return nil, err
		}
		values[element.ID] = value
	}

	if err := submission.Validate(layout, registry, values); err != nil {
		return nil, err
	}
	return values, nil
}

func (r *Renderer) show(ctx context.Context, element model.ElementInstance) error {
	attrs := element.Attributes
	var msg string
	switch element.Type {
	case model.TitleField:
		msg = strings.ToUpper(attrs.String(model.AttrTitle))
	case model.SubTitleField:
		msg = attrs.String(model.AttrTitle)
	case model.ParagraphField:
		msg = attrs.String(model.AttrText)
	case model.SpacerField:
		msg = ""
	default:
		return nil
	}
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) ask(ctx context.Context, variant elements.Variant, element model.ElementInstance, current string) (string, error) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		raw, err := r.prompt(ctx, element, current)
		if err != nil {
			return "", err
		}
		if variant.Validate(element, raw) {
			return raw, nil
		}
		msg := fmt.Sprintf("%s%s %s", r.theme.ErrorPrefix, promptLabel(element), variant.FailureMessage())
		if err := r.driver.Info(ctx, msg); err != nil {
			return "", err
		}
		current = raw
	}
	return "", fmt.Errorf("%w: %s", ErrTooManyAttempts, element.ID)
}

func (r *Renderer) prompt(ctx context.Context, element model.ElementInstance, current string) (string, error) {
	attrs := element.Attributes
	message := promptLabel(element)
	help := attrs.String(model.AttrHelperText)

	switch element.Type {
	case model.CheckboxField:
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Help: help, Default: current == "true"})
		if err != nil {
			return "", err
		}
		if ok {
			return "true", nil
		}
		return "false", nil
	case model.TextAreaField:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: message, Help: help, Default: current})
	case model.SelectField:
		choices := attrs.Strings(model.AttrOptions)
		if len(choices) == 0 {
			break
		}
		if !attrs.Bool(model.AttrRequired) {
			choices = append([]string{noneOption}, choices...)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Help:         help,
			Options:      choices,
			DefaultIndex: indexOf(choices, current),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(choices) || choices[idx] == noneOption {
			return "", nil
		}
		return choices[idx], nil
	case model.DateField:
		if help == "" {
			help = "YYYY-MM-DD"
		}
	}

	return r.driver.Input(ctx, InputConfig{Message: message, Help: help, Default: current})
}

func promptLabel(element model.ElementInstance) string {
	label := element.Attributes.String(model.AttrLabel)
	if label == "" {
		label = element.ID
	}
	if element.Attributes.Bool(model.AttrRequired) {
		label += " *"
	}
	return label
}
