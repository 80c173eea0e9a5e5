package models

// Form field types understood by the lead form
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeTel      = "tel"
	FieldTypeSelect   = "select"
	FieldTypeTextarea = "textarea"
)

// FormField describes one input of the lead form. Fields are defined in the
// site content and consumed read-only.
type FormField struct {
	Name     string   `yaml:"name" json:"name"`
	Label    string   `yaml:"label" json:"label"`
	Type     string   `yaml:"type" json:"type"`
	Required bool     `yaml:"required" json:"required"`
	Options  []string `yaml:"options,omitempty" json:"options,omitempty"`
}

// IsValidFieldType checks if a field type is supported
func IsValidFieldType(fieldType string) bool {
	validTypes := []string{
		FieldTypeText,
		FieldTypeEmail,
		FieldTypeTel,
		FieldTypeSelect,
		FieldTypeTextarea,
	}
	for _, t := range validTypes {
		if t == fieldType {
			return true
		}
	}
	return false
}

// IsFullWidth reports whether the field spans both columns of the form grid.
func (f FormField) IsFullWidth() bool {
	return f.Type == FieldTypeTextarea || f.Name == "additionalNotes"
}

// HasOption reports whether value is one of the field's selectable options.
func (f FormField) HasOption(value string) bool {
	for _, o := range f.Options {
		if o == value {
			return true
		}
	}
	return false
}
