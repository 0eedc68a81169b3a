// Package schema holds the input validators for every writable entity.
// Each validator decodes a JSON object field by field and returns either a
// typed value or the full list of field violations.
package schema

import (
	"fmt"
	"strings"
)

// Violation describes one rejected input field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is returned as the error of every Parse function.
type Violations []Violation

func (v Violations) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, item := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", item.Field, item.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields reports the names of the rejected fields in order.
func (v Violations) Fields() []string {
	names := make([]string, 0, len(v))
	for _, item := range v {
		names = append(names, item.Field)
	}
	return names
}

func (v Violations) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
