package vanilla

// ChromeClass is a semantic CSS class emitted around the rendered elements.
type ChromeClass string

const (
	ClassForm    ChromeClass = "fb-form"
	ClassHeader  ChromeClass = "fb-header"
	ClassField   ChromeClass = "fb-field"
	ClassInvalid ChromeClass = "fb-field--invalid"
	ClassActions ChromeClass = "fb-actions"
	ClassError   ChromeClass = "fb-error"
)
