package formfields

import (
	"html"
	"strconv"
	"strings"
)

// kind is the per-type behaviour behind a FieldType. The interface is
// unexported so the set of kinds is closed to this package.
type kind interface {
	hasOptions() bool
	hasPlaceholder() bool
	multiValue() bool
	render(b *strings.Builder, f Field, vals []string, ctl control)
}

// control carries the attributes shared by every rendered control.
type control struct {
	disabled  bool
	invalid   bool
	describes string
}

var kinds = map[FieldType]kind{
	TypeText:     inputKind{inputType: "text"},
	TypeEmail:    inputKind{inputType: "email"},
	TypeTel:      inputKind{inputType: "tel"},
	TypeDate:     inputKind{inputType: "date"},
	TypeTextarea: textareaKind{rows: 4},
	TypeSelect:   selectKind{},
	TypeCheckbox: choiceKind{inputType: "checkbox", multi: true},
	TypeRadio:    choiceKind{inputType: "radio"},
}

/* ===============================
   single-line input
=================================*/

type inputKind struct{ inputType string }

func (inputKind) hasOptions() bool     { return false }
func (inputKind) hasPlaceholder() bool { return true }
func (inputKind) multiValue() bool     { return false }

func (k inputKind) render(b *strings.Builder, f Field, vals []string, ctl control) {
	b.WriteString(`<input type="`)
	b.WriteString(k.inputType)
	b.WriteString(`"`)
	writeAttr(b, "id", f.ID)
	writeAttr(b, "name", f.ID)
	writeAttr(b, "value", first(vals))
	if f.Placeholder != "" {
		writeAttr(b, "placeholder", f.Placeholder)
	}
	writeCommon(b, f, ctl, true)
	b.WriteString(`>`)
}

/* ===============================
   textarea
=================================*/

type textareaKind struct{ rows int }

func (textareaKind) hasOptions() bool     { return false }
func (textareaKind) hasPlaceholder() bool { return true }
func (textareaKind) multiValue() bool     { return false }

func (k textareaKind) render(b *strings.Builder, f Field, vals []string, ctl control) {
	b.WriteString(`<textarea`)
	writeAttr(b, "id", f.ID)
	writeAttr(b, "name", f.ID)
	writeAttr(b, "rows", strconv.Itoa(k.rows))
	if f.Placeholder != "" {
		writeAttr(b, "placeholder", f.Placeholder)
	}
	writeCommon(b, f, ctl, true)
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(first(vals)))
	b.WriteString(`</textarea>`)
}

/* ===============================
   select
=================================*/

type selectKind struct{}

func (selectKind) hasOptions() bool     { return true }
func (selectKind) hasPlaceholder() bool { return true }
func (selectKind) multiValue() bool     { return false }

func (selectKind) render(b *strings.Builder, f Field, vals []string, ctl control) {
	current := first(vals)

	b.WriteString(`<select`)
	writeAttr(b, "id", f.ID)
	writeAttr(b, "name", f.ID)
	writeCommon(b, f, ctl, true)
	b.WriteString(`>`)

	placeholder := f.Placeholder
	if placeholder == "" {
		placeholder = "Select an option"
	}
	b.WriteString(`<option value="" disabled`)
	if current == "" {
		b.WriteString(` selected`)
	}
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(placeholder))
	b.WriteString(`</option>`)

	for _, o := range f.Options {
		b.WriteString(`<option`)
		writeAttr(b, "value", o.Value)
		if o.Value == current {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(o.Label))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
}

/* ===============================
   checkbox / radio group
=================================*/

type choiceKind struct {
	inputType string
	multi     bool
}

func (choiceKind) hasOptions() bool     { return true }
func (choiceKind) hasPlaceholder() bool { return false }
func (k choiceKind) multiValue() bool   { return k.multi }

func (k choiceKind) render(b *strings.Builder, f Field, vals []string, ctl control) {
	checked := make(map[string]bool, len(vals))
	for _, v := range vals {
		checked[v] = true
	}

	b.WriteString(`<div class="form-options" role="group"`)
	writeAttr(b, "aria-labelledby", f.ID+"-label")
	b.WriteString(`>`)
	for _, o := range f.Options {
		optID := f.ID + "-" + o.Value
		b.WriteString(`<div class="form-option"><input type="`)
		b.WriteString(k.inputType)
		b.WriteString(`"`)
		writeAttr(b, "id", optID)
		writeAttr(b, "name", f.ID)
		writeAttr(b, "value", o.Value)
		if checked[o.Value] {
			b.WriteString(` checked`)
		}
		// a required checkbox group cannot be expressed in HTML; radios can
		writeCommon(b, f, ctl, !k.multi)
		b.WriteString(`><label`)
		writeAttr(b, "for", optID)
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(o.Label))
		b.WriteString(`</label></div>`)
	}
	b.WriteString(`</div>`)
}

/* ===============================
   helpers
=================================*/

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(` `)
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func writeCommon(b *strings.Builder, f Field, ctl control, allowRequired bool) {
	if f.Required && allowRequired {
		b.WriteString(` required`)
	}
	if ctl.disabled {
		b.WriteString(` disabled`)
	}
	if ctl.invalid {
		b.WriteString(` aria-invalid="true"`)
	}
	if ctl.describes != "" {
		writeAttr(b, "aria-describedby", ctl.describes)
	}
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
