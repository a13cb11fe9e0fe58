// Package formfields holds the registration-form schema embedded in every
// landing page, together with the renderer, validator and editor draft that
// all work off that same schema.
package formfields

import (
	"errors"
	"fmt"
	"strings"
)

type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeTel      FieldType = "tel"
	TypeSelect   FieldType = "select"
	TypeTextarea FieldType = "textarea"
	TypeCheckbox FieldType = "checkbox"
	TypeRadio    FieldType = "radio"
	TypeDate     FieldType = "date"
)

// AllTypes in the order the editor offers them.
var AllTypes = []FieldType{
	TypeText, TypeEmail, TypeTel, TypeSelect, TypeTextarea, TypeCheckbox, TypeRadio, TypeDate,
}

func (t FieldType) Valid() bool {
	_, ok := kinds[t]
	return ok
}

// HasOptions is true for select, checkbox and radio.
func (t FieldType) HasOptions() bool {
	k, ok := kinds[t]
	return ok && k.hasOptions()
}

// MultiValue is true when a submission may carry several values for the field.
func (t FieldType) MultiValue() bool {
	k, ok := kinds[t]
	return ok && k.multiValue()
}

type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Label       string    `json:"label" yaml:"label"`
	Type        FieldType `json:"type" yaml:"type"`
	Required    bool      `json:"required" yaml:"required"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Fields is an ordered field list; order is render order.
type Fields []Field

var (
	ErrFieldIDRequired    = errors.New("field id is required")
	ErrFieldLabelRequired = errors.New("field label is required")
	ErrUnknownFieldType   = errors.New("unknown field type")
	ErrOptionsRequired    = errors.New("field needs at least one option")
	ErrOptionValueEmpty   = errors.New("option value is required")
	ErrDuplicateOption    = errors.New("duplicate option value")
	ErrDuplicateFieldID   = errors.New("duplicate field id")
)

// SchemaError points at the offending field (and option, when Option >= 0).
type SchemaError struct {
	FieldID string
	Index   int
	Option  int
	Err     error
}

func (e *SchemaError) Error() string {
	where := fmt.Sprintf("field #%d", e.Index+1)
	if e.FieldID != "" {
		where = fmt.Sprintf("field %q", e.FieldID)
	}
	if e.Option >= 0 {
		where += fmt.Sprintf(" option #%d", e.Option+1)
	}
	return where + ": " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error { return e.Err }

// NewField trims and normalises f and checks the type/attribute invariant:
// choice types carry a non-empty list of distinct options, every other type
// carries none, and placeholder is dropped where it cannot be shown.
func NewField(f Field) (Field, error) {
	f.ID = strings.TrimSpace(f.ID)
	f.Label = strings.TrimSpace(f.Label)
	f.Type = FieldType(strings.ToLower(strings.TrimSpace(string(f.Type))))
	f.Placeholder = strings.TrimSpace(f.Placeholder)
	f.Description = strings.TrimSpace(f.Description)

	fail := func(opt int, err error) (Field, error) {
		return Field{}, &SchemaError{FieldID: f.ID, Option: opt, Err: err}
	}

	if f.ID == "" {
		return fail(-1, ErrFieldIDRequired)
	}
	if f.Label == "" {
		return fail(-1, ErrFieldLabelRequired)
	}
	k, ok := kinds[f.Type]
	if !ok {
		return fail(-1, fmt.Errorf("%w %q", ErrUnknownFieldType, f.Type))
	}

	if !k.hasPlaceholder() {
		f.Placeholder = ""
	}
	if !k.hasOptions() {
		f.Options = nil
		return f, nil
	}

	if len(f.Options) == 0 {
		return fail(-1, ErrOptionsRequired)
	}
	opts := make([]Option, 0, len(f.Options))
	seen := make(map[string]struct{}, len(f.Options))
	for i, o := range f.Options {
		o.Value = strings.TrimSpace(o.Value)
		o.Label = strings.TrimSpace(o.Label)
		if o.Value == "" {
			return fail(i, ErrOptionValueEmpty)
		}
		if _, dup := seen[o.Value]; dup {
			return fail(i, fmt.Errorf("%w %q", ErrDuplicateOption, o.Value))
		}
		seen[o.Value] = struct{}{}
		if o.Label == "" {
			o.Label = o.Value
		}
		opts = append(opts, o)
	}
	f.Options = opts
	return f, nil
}

// NewFields runs NewField over the list and enforces unique ids.
func NewFields(list []Field) (Fields, error) {
	out := make(Fields, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for i, raw := range list {
		f, err := NewField(raw)
		if err != nil {
			var se *SchemaError
			if errors.As(err, &se) {
				se.Index = i
			}
			return nil, err
		}
		if _, dup := seen[f.ID]; dup {
			return nil, &SchemaError{FieldID: f.ID, Index: i, Option: -1, Err: ErrDuplicateFieldID}
		}
		seen[f.ID] = struct{}{}
		out = append(out, f)
	}
	return out, nil
}

// Clone deep-copies the list, options included.
func (fs Fields) Clone() Fields {
	if fs == nil {
		return nil
	}
	out := make(Fields, len(fs))
	for i, f := range fs {
		if f.Options != nil {
			f.Options = append([]Option(nil), f.Options...)
		}
		out[i] = f
	}
	return out
}

// Index returns the position of the field with id, or -1.
func (fs Fields) Index(id string) int {
	for i := range fs {
		if fs[i].ID == id {
			return i
		}
	}
	return -1
}

func (fs Fields) IDs() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.ID
	}
	return out
}
