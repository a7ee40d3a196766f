package forms

import (
	"sort"
	"strings"

	"github.com/example/eatery/internal/currency"
)

// FieldErrors maps a field path to the message of its first failed rule.
// List elements are addressed per index and sub-field, e.g.
// "menuItems[2].price". A later rule never overwrites an earlier failure for
// the same field, and a failure on one field never blocks validation of its
// siblings.
type FieldErrors map[string]string

func (fe FieldErrors) add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

// Has reports whether the field has a recorded error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Error renders the map as a deterministic single line so FieldErrors can
// travel as an error value.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(fe[f])
	}
	return b.String()
}

// Rule is one predicate over a raw field value paired with the message
// reported when it fails.
type Rule struct {
	Check   func(value string) bool
	Message string
}

// NonEmpty fails on empty or all-whitespace values.
func NonEmpty(message string) Rule {
	return Rule{
		Check:   func(v string) bool { return strings.TrimSpace(v) != "" },
		Message: message,
	}
}

// MaxLen fails on values longer than n bytes.
func MaxLen(n int, message string) Rule {
	return Rule{
		Check:   func(v string) bool { return len(v) <= n },
		Message: message,
	}
}

// TextField is an ordered rule list for one text field. Rules run in order
// and the first failure short-circuits the rest for that field only.
type TextField struct {
	Rules []Rule
}

// Validate applies the rules to value, recording at most one error under
// path. It reports whether the value passed.
func (f TextField) Validate(path, value string, errs FieldErrors) bool {
	for _, r := range f.Rules {
		if !r.Check(value) {
			errs.add(path, r.Message)
			return false
		}
	}
	return true
}

// NumberField validates a string-held numeric field through a fixed
// parse-then-validate pipeline: required, parses as a number, not below Min.
// Each step short-circuits the following ones. On success the caller gets the
// parsed number, so no later stage ever re-parses the string.
type NumberField struct {
	Min             float64
	RequiredMessage string
	NumberMessage   string
	MinMessage      string
}

// Validate runs the pipeline, recording at most one error under path.
func (f NumberField) Validate(path, raw string, errs FieldErrors) (float64, bool) {
	if strings.TrimSpace(raw) == "" {
		errs.add(path, f.RequiredMessage)
		return 0, false
	}
	n, err := currency.ParseNumber(raw)
	if err != nil {
		errs.add(path, f.NumberMessage)
		return 0, false
	}
	if n < f.Min {
		errs.add(path, f.MinMessage)
		return 0, false
	}
	return n, true
}
