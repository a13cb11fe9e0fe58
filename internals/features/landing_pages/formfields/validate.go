package formfields

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const msgInvalidEmail = "Please enter a valid email address"

// Validate checks values against fields in schema order and returns field
// id → message. An empty map means the submission is acceptable.
func Validate(values Values, fields Fields) map[string]string {
	errs := make(map[string]string)
	for _, f := range fields {
		filled := values.Filled(f.ID)
		if f.Required && !filled {
			errs[f.ID] = f.Label + " is required"
			continue
		}
		if f.Type == TypeEmail && filled && !emailPattern.MatchString(strings.TrimSpace(values.Get(f.ID))) {
			errs[f.ID] = msgInvalidEmail
		}
	}
	return errs
}

// Process validates values and hands them to handler only when they pass.
// The returned map is non-empty exactly when handler was not called.
func Process(fields Fields, values Values, handler func(Values) error) (map[string]string, error) {
	if errs := Validate(values, fields); len(errs) > 0 {
		return errs, nil
	}
	return nil, handler(values)
}
