package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var reFirstNumber = regexp.MustCompile(`\d+`)

// Installment reads an installment count that may be a bare integer or a
// compound "n de m" string; only the first number is retained. Absent input
// defaults to 1, digit-free garbage to 0. Never negative, never an error.
func Installment(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 1, false
	}
	m := reFirstNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
