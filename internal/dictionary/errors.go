package dictionary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate is returned by Create when the normalized name already exists.
var ErrDuplicate = errors.New("word already exists")

// ValidationError lists the form fields that block a create.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", strings.Join(e.Fields, ", "), e.Reason)
	}
	return "blank " + strings.Join(e.Fields, ", ")
}

// Message is the user-facing text for the error.
func (e *ValidationError) Message() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", strings.Join(e.Fields, ", "), e.Reason)
	}
	verb := "field is"
	if len(e.Fields) > 1 {
		verb = "fields are"
	}
	return fmt.Sprintf("%s %s still blank!", strings.Join(e.Fields, ", "), verb)
}
