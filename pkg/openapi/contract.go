package openapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// SubmissionPath returns the public submission endpoint of a shared form.
func SubmissionPath(shareURL string) string {
	return "/api/v1/public/forms/" + strings.TrimSpace(shareURL) + "/submissions"
}

// SubmissionSchema describes the submission object of a layout: one string
// property per input element, keyed by element id.
func SubmissionSchema(layout model.Layout, registry *elements.Registry) (*openapi3.Schema, error) {
	if registry == nil {
		registry = elements.Default()
	}

	schema := openapi3.NewObjectSchema()
	schema.Properties = openapi3.Schemas{}
	for _, element := range layout {
		variant, err := registry.Lookup(element.Type)
		if err != nil {
			return nil, fmt.Errorf("openapi: element %q: %w", element.ID, err)
		}
		if !variant.Input() {
			continue
		}

		attrs := variant.Resolve(element).Attributes
		required := attrs.Bool(model.AttrRequired)

		prop := openapi3.NewStringSchema()
		prop.Title = attrs.String(model.AttrLabel)
		prop.Description = attrs.String(model.AttrHelperText)

		switch element.Type {
		case model.CheckboxField:
			if required {
				prop.Enum = []any{"true"}
			} else {
				prop.Enum = []any{"true", "false"}
			}
		case model.SelectField:
			if options := attrs.Strings(model.AttrOptions); len(options) > 0 {
				enum := make([]any, 0, len(options)+1)
				if !required {
					enum = append(enum, "")
				}
				for _, option := range options {
					enum = append(enum, option)
				}
				prop.Enum = enum
			}
		case model.DateField:
			prop.Format = "date"
		}
		if required && prop.Enum == nil {
			prop.MinLength = 1
		}

		schema.Properties[element.ID] = openapi3.NewSchemaRef("", prop)
		if required {
			schema.Required = append(schema.Required, element.ID)
		}
	}
	return schema, nil
}

// SubmissionSpec builds an OpenAPI 3 document with the single POST operation
// accepting submissions for a shared form.
func SubmissionSpec(title, shareURL string, layout model.Layout, registry *elements.Registry) (*openapi3.T, error) {
	if strings.TrimSpace(shareURL) == "" {
		return nil, fmt.Errorf("openapi: share url is required")
	}
	schema, err := SubmissionSchema(layout, registry)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = "Form submission"
	}

	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithDescription("Values keyed by element id.").
		WithJSONSchema(schema)

	op := openapi3.NewOperation()
	op.OperationID = "submitForm"
	op.Summary = "Submit " + title
	op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(201, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Submission stored")}),
		openapi3.WithStatus(404, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Form not found or not published")}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("One or more values were rejected")}),
	)

	paths := openapi3.NewPaths()
	paths.Set(SubmissionPath(shareURL), &openapi3.PathItem{Post: op})

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: "1.0.0",
		},
		Paths: paths,
	}, nil
}
