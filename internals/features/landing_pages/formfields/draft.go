package formfields

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrFieldNotFound = errors.New("field not found")
	ErrNoOptions     = errors.New("field type has no options")
	ErrOptionIndex   = errors.New("option index out of range")
	ErrMoveIndex     = errors.New("move target out of range")
)

const DefaultFieldLabel = "New Field"

// FieldPatch is a partial field update. Nil members are left untouched and
// the id cannot be changed.
type FieldPatch struct {
	Label       *string    `json:"label,omitempty"`
	Type        *FieldType `json:"type,omitempty"`
	Required    *bool      `json:"required,omitempty"`
	Placeholder *string    `json:"placeholder,omitempty"`
	Description *string    `json:"description,omitempty"`
	Options     *[]Option  `json:"options,omitempty"`
}

// Draft is the editor's staging copy of a page's field list. Edits never
// touch the list it was created from; Commit validates the result, which
// is then saved whole with the page.
type Draft struct {
	fields Fields
	newID  func() string
}

func NewDraft(fields Fields) *Draft {
	return &Draft{fields: fields.Clone(), newID: uuid.NewString}
}

// Fields returns a copy of the current draft list.
func (d *Draft) Fields() Fields { return d.fields.Clone() }

func (d *Draft) Len() int { return len(d.fields) }

func (d *Draft) lookup(id string) (int, error) {
	i := d.fields.Index(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrFieldNotFound, id)
	}
	return i, nil
}

// AddField appends a field of type t with a fresh id. Choice types start
// with one option so the field is valid straight away.
func (d *Draft) AddField(t FieldType) (Field, error) {
	if !t.Valid() {
		return Field{}, fmt.Errorf("%w %q", ErrUnknownFieldType, t)
	}
	f := Field{ID: d.newID(), Label: DefaultFieldLabel, Type: t}
	if t.HasOptions() {
		f.Options = []Option{nextOption(nil)}
	}
	d.fields = append(d.fields, f)
	return f, nil
}

func (d *Draft) RemoveField(id string) error {
	i, err := d.lookup(id)
	if err != nil {
		return err
	}
	d.fields = append(d.fields[:i], d.fields[i+1:]...)
	return nil
}

// UpdateField applies p to the field. Switching to a choice type seeds an
// option when there is none; switching away drops options.
func (d *Draft) UpdateField(id string, p FieldPatch) error {
	i, err := d.lookup(id)
	if err != nil {
		return err
	}
	f := d.fields[i]

	if p.Type != nil {
		if !p.Type.Valid() {
			return fmt.Errorf("%w %q", ErrUnknownFieldType, *p.Type)
		}
		f.Type = *p.Type
	}
	if p.Label != nil {
		f.Label = *p.Label
	}
	if p.Required != nil {
		f.Required = *p.Required
	}
	if p.Placeholder != nil {
		f.Placeholder = *p.Placeholder
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Options != nil {
		f.Options = append([]Option(nil), (*p.Options)...)
	}

	k := kinds[f.Type]
	switch {
	case !k.hasOptions():
		f.Options = nil
	case len(f.Options) == 0:
		f.Options = []Option{nextOption(nil)}
	}
	if !k.hasPlaceholder() {
		f.Placeholder = ""
	}

	d.fields[i] = f
	return nil
}

// AddOption appends "Option N" to a choice field.
func (d *Draft) AddOption(id string) (Option, error) {
	i, err := d.lookup(id)
	if err != nil {
		return Option{}, err
	}
	if !d.fields[i].Type.HasOptions() {
		return Option{}, fmt.Errorf("%w: %s", ErrNoOptions, d.fields[i].Type)
	}
	o := nextOption(d.fields[i].Options)
	d.fields[i].Options = append(d.fields[i].Options, o)
	return o, nil
}

// RemoveOption drops the option at index. Removing the last one is allowed
// here; Commit rejects a choice field with no options.
func (d *Draft) RemoveOption(id string, index int) error {
	i, err := d.lookup(id)
	if err != nil {
		return err
	}
	opts := d.fields[i].Options
	if index < 0 || index >= len(opts) {
		return fmt.Errorf("%w: %d", ErrOptionIndex, index)
	}
	d.fields[i].Options = append(opts[:index:index], opts[index+1:]...)
	return nil
}

// MoveField moves the field to position to, shifting the others.
func (d *Draft) MoveField(id string, to int) error {
	i, err := d.lookup(id)
	if err != nil {
		return err
	}
	if to < 0 || to >= len(d.fields) {
		return fmt.Errorf("%w: %d", ErrMoveIndex, to)
	}
	f := d.fields[i]
	d.fields = append(d.fields[:i], d.fields[i+1:]...)
	d.fields = append(d.fields[:to], append(Fields{f}, d.fields[to:]...)...)
	return nil
}

// Commit validates the draft and returns the normalised list.
func (d *Draft) Commit() (Fields, error) {
	return NewFields(d.fields)
}

func nextOption(existing []Option) Option {
	used := make(map[string]bool, len(existing))
	for _, o := range existing {
		used[o.Value] = true
	}
	n := len(existing) + 1
	for used[fmt.Sprintf("option-%d", n)] {
		n++
	}
	return Option{Value: fmt.Sprintf("option-%d", n), Label: fmt.Sprintf("Option %d", n)}
}
