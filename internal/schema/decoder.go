package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateOnly = time.DateOnly

// object walks the top-level fields of a JSON object and accumulates
// violations instead of stopping at the first one.
type object struct {
	fields     map[string]json.RawMessage
	violations Violations
}

func decodeObject(body []byte) (*object, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, Violations{{Field: "body", Message: "Expected a JSON object"}}
	}
	return &object{fields: fields}, nil
}

func (o *object) fail(field, message string) {
	o.violations = append(o.violations, Violation{Field: field, Message: message})
}

// raw returns the field value; null counts as absent.
func (o *object) raw(field string) (json.RawMessage, bool) {
	val, ok := o.fields[field]
	if !ok || string(val) == "null" {
		return nil, false
	}
	return val, true
}

func (o *object) missing(field string, required bool) {
	if required {
		o.fail(field, "Required")
	}
}

func (o *object) str(field string, required bool) (string, bool) {
	val, ok := o.raw(field)
	if !ok {
		o.missing(field, required)
		return "", false
	}
	var s string
	if err := json.Unmarshal(val, &s); err != nil {
		o.fail(field, "Expected string")
		return "", false
	}
	return s, true
}

// text is str for fields that must carry a value whenever they are
// present, whether the payload is a full record or a patch.
func (o *object) text(field string, required bool) (string, bool) {
	s, ok := o.str(field, required)
	if !ok {
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		o.fail(field, "Must not be empty")
		return "", false
	}
	return s, true
}

func (o *object) optionalStr(field string) *string {
	s, ok := o.str(field, false)
	if !ok {
		return nil
	}
	return &s
}

func (o *object) integer(field string, required bool, min int) (int, bool) {
	val, ok := o.raw(field)
	if !ok {
		o.missing(field, required)
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(val, &f); err != nil {
		o.fail(field, "Expected number")
		return 0, false
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		o.fail(field, "Expected integer")
		return 0, false
	}
	n := int(f)
	if n < min {
		o.fail(field, "Must be at least "+strconv.Itoa(min))
		return 0, false
	}
	return n, true
}

func (o *object) stringList(field string) ([]string, bool) {
	val, ok := o.raw(field)
	if !ok {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal(val, &list); err != nil {
		o.fail(field, "Expected array of strings")
		return nil, false
	}
	return list, true
}

func (o *object) date(field string, required bool) (time.Time, bool) {
	s, ok := o.text(field, required)
	if !ok {
		return time.Time{}, false
	}
	if t, ok := ParseDate(s); ok {
		return t, true
	}
	o.fail(field, "Invalid date")
	return time.Time{}, false
}
