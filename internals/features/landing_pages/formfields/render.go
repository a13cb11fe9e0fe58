package formfields

import (
	"html"
	"sort"
	"strings"
)

type RenderOptions struct {
	Values     Values
	Errors     map[string]string
	Action     string
	Method     string // default "post"
	SubmitText string // default "Submit"
	FormID     string

	// Disabled renders every control and the submit button disabled (preview).
	Disabled bool

	// Hidden inputs written before the fields, e.g. a CSRF token.
	Hidden map[string]string
}

// Render produces the form markup: one control per field, each named by
// field id, followed by the submit button.
func Render(fields Fields, opts RenderOptions) string {
	method := opts.Method
	if method == "" {
		method = "post"
	}
	submit := opts.SubmitText
	if submit == "" {
		submit = "Submit"
	}

	var b strings.Builder
	b.WriteString(`<form class="volunteer-form" novalidate`)
	if opts.FormID != "" {
		writeAttr(&b, "id", opts.FormID)
	}
	writeAttr(&b, "method", method)
	if opts.Action != "" {
		writeAttr(&b, "action", opts.Action)
	}
	b.WriteString(`>`)

	names := make([]string, 0, len(opts.Hidden))
	for name := range opts.Hidden {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(`<input type="hidden"`)
		writeAttr(&b, "name", name)
		writeAttr(&b, "value", opts.Hidden[name])
		b.WriteString(`>`)
	}

	for _, f := range fields {
		renderField(&b, f, opts.Values[f.ID], opts.Errors[f.ID], opts.Disabled)
	}

	b.WriteString(`<button type="submit" class="btn btn-primary"`)
	if opts.Disabled {
		b.WriteString(` disabled`)
	}
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(submit))
	b.WriteString(`</button></form>`)
	return b.String()
}

// RenderField renders a single field with its label, description and error.
func RenderField(f Field, vals []string, errMsg string, disabled bool) string {
	var b strings.Builder
	renderField(&b, f, vals, errMsg, disabled)
	return b.String()
}

func renderField(b *strings.Builder, f Field, vals []string, errMsg string, disabled bool) {
	k, ok := kinds[f.Type]
	if !ok {
		return
	}

	b.WriteString(`<div class="form-field`)
	if errMsg != "" {
		b.WriteString(` has-error`)
	}
	b.WriteString(`">`)

	// checkbox/radio groups have no single control to point a <label> at
	group := k.hasOptions() && !k.hasPlaceholder()
	if group {
		b.WriteString(`<span class="form-label"`)
		writeAttr(b, "id", f.ID+"-label")
		b.WriteString(`>`)
	} else {
		b.WriteString(`<label class="form-label"`)
		writeAttr(b, "id", f.ID+"-label")
		writeAttr(b, "for", f.ID)
		b.WriteString(`>`)
	}
	b.WriteString(html.EscapeString(f.Label))
	if f.Required {
		b.WriteString(` <span class="required" aria-hidden="true">*</span>`)
	}
	if group {
		b.WriteString(`</span>`)
	} else {
		b.WriteString(`</label>`)
	}

	var describedBy []string
	if f.Description != "" {
		describedBy = append(describedBy, f.ID+"-description")
		b.WriteString(`<p class="form-description"`)
		writeAttr(b, "id", f.ID+"-description")
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(f.Description))
		b.WriteString(`</p>`)
	}
	if errMsg != "" {
		describedBy = append(describedBy, f.ID+"-error")
	}

	k.render(b, f, vals, control{
		disabled:  disabled,
		invalid:   errMsg != "",
		describes: strings.Join(describedBy, " "),
	})

	if errMsg != "" {
		b.WriteString(`<p class="form-error" role="alert"`)
		writeAttr(b, "id", f.ID+"-error")
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(errMsg))
		b.WriteString(`</p>`)
	}
	b.WriteString(`</div>`)
}
