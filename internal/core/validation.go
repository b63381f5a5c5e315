package core

// validation.go provides the declarative form validation used by the
// entity modals.
//
// A Schema lists fields with their rules. Validate runs every rule of every
// field and collects all failures, so the form can show each problem next
// to its input. Rules see the raw string value; empty values pass every
// rule except Required, mirroring how optional inputs behave.

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidForm is returned when a submission fails validation. Such a
// submission never reaches the API.
var ErrInvalidForm = errors.New("invalid form")

// Values is a plain field-name to raw-value structure, as posted by a form.
type Values map[string]string

// Get returns the value of field, or "".
func (v Values) Get(field string) string { return v[field] }

// Clone returns an independent copy.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	return maps.Clone(v)
}

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating a form.
type ValidationResult struct {
	Valid  bool              // True if all validations passed
	Errors []ValidationError // List of validation errors (empty if Valid)
}

// ErrorFor returns the first message recorded for field, or "".
func (r ValidationResult) ErrorFor(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Err returns nil when valid, otherwise an error wrapping ErrInvalidForm.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(msgs, "; "))
}

// Rule checks one value and returns a message when it is invalid.
type Rule func(value string) (message string, ok bool)

// Required rejects empty and whitespace-only values.
func Required() Rule {
	return func(value string) (string, bool) {
		if strings.TrimSpace(value) == "" {
			return "Este campo es obligatorio", false
		}
		return "", true
	}
}

// MaxLength rejects values longer than n characters once trimmed, as
// they are sent.
func MaxLength(n int) Rule {
	return func(value string) (string, bool) {
		if utf8.RuneCountInString(strings.TrimSpace(value)) > n {
			return fmt.Sprintf("Máximo %d caracteres", n), false
		}
		return "", true
	}
}

// Integer rejects values that are not whole numbers.
func Integer() Rule {
	return func(value string) (string, bool) {
		value = strings.TrimSpace(value)
		if value == "" {
			return "", true
		}
		if _, err := strconv.Atoi(value); err != nil {
			return "Debe ser un número entero", false
		}
		return "", true
	}
}

// Range rejects whole numbers outside [min, max], and non-numbers.
func Range(min, max int) Rule {
	return func(value string) (string, bool) {
		value = strings.TrimSpace(value)
		if value == "" {
			return "", true
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return "Debe ser un número entero", false
		}
		if n < min || n > max {
			return fmt.Sprintf("Debe estar entre %d y %d", min, max), false
		}
		return "", true
	}
}

// FieldRules binds rules to one form field.
type FieldRules struct {
	Field string
	Rules []Rule
}

// Field declares the rules of one field.
func Field(name string, rules ...Rule) FieldRules {
	return FieldRules{Field: name, Rules: rules}
}

// Schema is an ordered list of field rules.
type Schema []FieldRules

// Validate evaluates every rule against values. A field stops at its first
// failing rule; all fields are always checked.
func (s Schema) Validate(values Values) ValidationResult {
	result := ValidationResult{Valid: true}

	for _, f := range s {
		raw := values.Get(f.Field)
		for _, rule := range f.Rules {
			if msg, ok := rule(raw); !ok {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   f.Field,
					Value:   raw,
					Message: msg,
				})
				break
			}
		}
	}

	return result
}

// Fields returns the declared field names in order.
func (s Schema) Fields() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Field
	}
	return names
}
