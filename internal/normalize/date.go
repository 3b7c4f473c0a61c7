package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reSlashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	reISODate   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	reSerial    = regexp.MustCompile(`^\d+(\.0+)?$`)
)

// serialEpoch day 1 of the spreadsheet serial scheme.
var serialEpoch = time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC)

// Date normalizes a date in any supported input form to DD/MM/YYYY.
// Accepted: DD/MM/YYYY, DD/MM/YY (years <50 read as 20xx, else 19xx),
// YYYY-MM-DD, or a spreadsheet serial day count. Empty input yields empty.
// Malformed input is returned unchanged with ok=false; it never fails.
func Date(raw string) (value string, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", true
	}

	if m := reSlashDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		if !validDay(year, month, day) {
			return raw, false
		}
		return fmt.Sprintf("%02d/%02d/%04d", day, month, year), true
	}

	if m := reISODate.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if !validDay(year, month, day) {
			return raw, false
		}
		return fmt.Sprintf("%02d/%02d/%04d", day, month, year), true
	}

	if reSerial.MatchString(s) {
		whole := s
		if i := strings.IndexByte(whole, '.'); i >= 0 {
			whole = whole[:i]
		}
		serial, err := strconv.Atoi(whole)
		if err != nil || serial < 3 {
			return raw, false
		}
		// Day 1 anchors at 1900-01-01; two days are subtracted for the
		// historical leap-year miscount of that numbering scheme.
		t := serialEpoch.AddDate(0, 0, serial-2)
		return t.Format("02/01/2006"), true
	}

	return raw, false
}

// DateTime parses a canonical or near-canonical date into a time anchored at
// midday, so day-boundary comparisons cannot shift across timezones.
func DateTime(raw string) (time.Time, bool) {
	value, ok := Date(raw)
	if !ok || value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("02/01/2006", value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t.Add(12 * time.Hour), true
}

func validDay(year, month, day int) bool {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}
