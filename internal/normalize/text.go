package normalize

import "strings"

// Text trims and upper-cases free text for comparison. Missing input folds
// to the empty string.
func Text(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// CollapseSpaces trims and squeezes internal whitespace runs to one space.
func CollapseSpaces(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
