package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateEvent checks an Event against the field bounds in the policy.
// Checks run in a fixed order (name, description, date, location, perks) and
// every failing field is reported. The date is a free-form string; only its
// length is constrained, it is not parsed as a calendar date. Returns a
// *ValidationError if any rule fails, or nil if the event is valid.
func ValidateEvent(e *Event, p Policy) error {
	if e == nil {
		return &ValidationError{Errors: []FieldError{{Field: "event", Message: "is required"}}}
	}

	var ve ValidationError

	name := strings.TrimSpace(e.Name)
	if name == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	} else if !p.Name.Contains(len([]rune(name))) {
		ve.Errors = append(ve.Errors, boundsError("name", p.Name))
	}

	if !p.Description.Contains(len([]rune(e.Description))) {
		ve.Errors = append(ve.Errors, boundsError("description", p.Description))
	}

	if !p.Date.Contains(len([]rune(e.Date))) {
		ve.Errors = append(ve.Errors, boundsError("date", p.Date))
	}

	if !p.Location.Contains(len([]rune(e.Location))) {
		ve.Errors = append(ve.Errors, boundsError("location", p.Location))
	}

	if !p.Perks.Contains(len(e.Perks)) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "perks",
			Message: fmt.Sprintf("must have between %d and %d entries", p.Perks.Min, p.Perks.Max),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

func boundsError(field string, b Bounds) FieldError {
	return FieldError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d characters", b.Min, b.Max),
	}
}
