package formset

import (
	"regexp"
	"strconv"
)

// The row index is embedded between the formset prefix and the field
// name, e.g. "ingredients-2-quantity". Only the first such run may be
// rewritten; digits elsewhere in a field name must stay untouched.
var indexRun = regexp.MustCompile(`-(\d+)-`)

// WithIndex returns identifier with its embedded row index replaced by
// target. Identifiers without an embedded index are returned unchanged.
func WithIndex(identifier string, target int) string {
	loc := indexRun.FindStringIndex(identifier)
	if loc == nil {
		return identifier
	}
	return identifier[:loc[0]] + "-" + strconv.Itoa(target) + "-" + identifier[loc[1]:]
}

// IndexOf extracts the embedded row index from identifier. The second
// return value is false when the identifier encodes no index.
func IndexOf(identifier string) (int, bool) {
	m := indexRun.FindStringSubmatch(identifier)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
