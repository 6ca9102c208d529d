package elements

import "github.com/goliatone/go-formbuilder/pkg/model"

var (
	labelProp       = StringProperty(model.AttrLabel, 2, 50)
	helperTextProp  = StringProperty(model.AttrHelperText, 0, 200)
	requiredProp    = BoolProperty(model.AttrRequired)
	placeholderProp = StringProperty(model.AttrPlaceholder, 0, 50)
	titleProp       = StringProperty(model.AttrTitle, 2, 50)
	textProp        = StringProperty(model.AttrText, 2, 500)
	heightProp      = IntProperty(model.AttrHeight, 5, 50)
	rowsProp        = IntProperty(model.AttrRows, 1, 10)
	optionsProp     = StringListProperty(model.AttrOptions)
)

// Builtins returns the specs of the element types shipped with the builder in
// palette order: layout elements first, then form elements.
func Builtins() []Spec {
	return []Spec{
		{
			Type:       model.TitleField,
			Label:      "Title Field",
			Icon:       "heading-1",
			Group:      GroupLayout,
			Properties: []Property{titleProp},
			Defaults:   model.Attributes{model.AttrTitle: "Title Field"},
		},
		{
			Type:       model.SubTitleField,
			Label:      "Subtitle Field",
			Icon:       "heading-2",
			Group:      GroupLayout,
			Properties: []Property{titleProp},
			Defaults:   model.Attributes{model.AttrTitle: "Subtitle Field"},
		},
		{
			Type:       model.ParagraphField,
			Label:      "Paragraph Field",
			Icon:       "text-paragraph",
			Group:      GroupLayout,
			Properties: []Property{textProp},
			Defaults:   model.Attributes{model.AttrText: "Text Here"},
		},
		{
			Type:       model.SpacerField,
			Label:      "Spacer Field",
			Icon:       "separator-horizontal",
			Group:      GroupLayout,
			Properties: []Property{heightProp},
			Defaults:   model.Attributes{model.AttrHeight: int64(20)},
		},
		{
			Type:       model.TextField,
			Label:      "Text Field",
			Icon:       "text-fields",
			Group:      GroupForm,
			Input:      true,
			Properties: []Property{labelProp, helperTextProp, requiredProp, placeholderProp},
			Defaults: model.Attributes{
				model.AttrLabel:       "Text Field",
				model.AttrHelperText:  "Helper Text",
				model.AttrRequired:    false,
				model.AttrPlaceholder: "Value Here...",
			},
			Validate: RequireValue,
		},
		{
			Type:       model.NumberField,
			Label:      "Number Field",
			Icon:       "numbers",
			Group:      GroupForm,
			Input:      true,
			Properties: []Property{labelProp, helperTextProp, requiredProp, placeholderProp},
			Defaults: model.Attributes{
				model.AttrLabel:       "Number Field",
				model.AttrHelperText:  "Helper Text",
				model.AttrRequired:    false,
				model.AttrPlaceholder: "0",
			},
			Validate: RequireValue,
		},
		{
			Type:       model.TextAreaField,
			Label:      "TextArea Field",
			Icon:       "textarea-resize",
			Group:      GroupForm,
			Input:      true,
			Properties: []Property{labelProp, helperTextProp, requiredProp, placeholderProp, rowsProp},
			Defaults: model.Attributes{
				model.AttrLabel:       "TextArea Field",
				model.AttrHelperText:  "Helper Text",
				model.AttrRequired:    false,
				model.AttrPlaceholder: "Value Here...",
				model.AttrRows:        int64(3),
			},
			Validate: RequireValue,
		},
		{
			Type:       model.DateField,
			Label:      "Date Field",
			Icon:       "calendar-date",
			Group:      GroupForm,
			Input:      true,
			Properties: []Property{labelProp, helperTextProp, requiredProp},
			Defaults: model.Attributes{
				model.AttrLabel:      "Date Field",
				model.AttrHelperText: "Pick a Date",
				model.AttrRequired:   false,
			},
			Validate: RequireValue,
		},
		{
			Type:       model.SelectField,
			Label:      "Select Field",
			Icon:       "dropdown-menu",
			Group:      GroupForm,
			Input:      true,
			Properties: []Property{labelProp, helperTextProp, requiredProp, placeholderProp, optionsProp},
			Defaults: model.Attributes{
				model.AttrLabel:       "Select Field",
				model.AttrHelperText:  "Helper Text",
				model.AttrRequired:    false,
				model.AttrPlaceholder: "Value Here...",
				model.AttrOptions:     []string{},
			},
			Validate: RequireValue,
		},
		{
			Type:       model.CheckboxField,
			Label:      "Checkbox Field",
			Icon:       "checkbox",
			Group:      GroupForm,
			Input:      true,
			Properties: []Property{labelProp, helperTextProp, requiredProp},
			Defaults: model.Attributes{
				model.AttrLabel:      "Checkbox Field",
				model.AttrHelperText: "Helper Text",
				model.AttrRequired:   false,
			},
			Validate:       RequireChecked,
			FailureMessage: "must be checked",
		},
	}
}
