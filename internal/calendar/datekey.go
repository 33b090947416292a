// Package calendar holds the day-keyed calendar model: dates, order
// assignments, the notes/assignments store and the text used to report
// changes to it.
package calendar

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateKey identifies one calendar day. The zero value is not a valid key.
type DateKey struct {
	Year  int
	Month int
	Day   int
}

// NewDateKey builds a key from its parts without validation.
func NewDateKey(year int, month time.Month, day int) DateKey {
	return DateKey{Year: year, Month: int(month), Day: day}
}

// KeyOf returns the key for the calendar day of t in t's location.
func KeyOf(t time.Time) DateKey {
	y, m, d := t.Date()
	return NewDateKey(y, m, d)
}

// ParseDateKey parses the YYYY-MM-DD form. It accepts unpadded parts as long
// as there are exactly three dash-separated integers naming a real date.
func ParseDateKey(s string) (DateKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return DateKey{}, fmt.Errorf("date key %q: want YYYY-MM-DD", s)
	}
	var nums [3]int
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return DateKey{}, fmt.Errorf("date key %q: part %q is not a number", s, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return DateKey{}, fmt.Errorf("date key %q: %w", s, err)
		}
		nums[i] = n
	}
	k := DateKey{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !k.Valid() {
		return DateKey{}, fmt.Errorf("date key %q: not a calendar date", s)
	}
	return k, nil
}

// Valid reports whether k names a real calendar date.
func (k DateKey) Valid() bool {
	if k.Year < 1 || k.Month < 1 || k.Month > 12 || k.Day < 1 {
		return false
	}
	return k.Day <= DaysIn(k.Year, time.Month(k.Month))
}

// String returns the zero-padded YYYY-MM-DD form.
func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

// Time returns midnight UTC of the day.
func (k DateKey) Time() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
}

// Label is the human form used in status messages, e.g. "March 15, 2024".
func (k DateKey) Label() string {
	return k.Time().Format("January 02, 2006")
}

// AddDays returns the key n days later (or earlier for negative n).
func (k DateKey) AddDays(n int) DateKey {
	return KeyOf(k.Time().AddDate(0, 0, n))
}

// Compare orders keys chronologically.
func (k DateKey) Compare(o DateKey) int {
	switch {
	case k.Year != o.Year:
		return cmpInt(k.Year, o.Year)
	case k.Month != o.Month:
		return cmpInt(k.Month, o.Month)
	default:
		return cmpInt(k.Day, o.Day)
	}
}

// Before reports whether k is earlier than o.
func (k DateKey) Before(o DateKey) bool { return k.Compare(o) < 0 }

// SortKeys sorts keys chronologically in place.
func SortKeys(keys []DateKey) {
	slices.SortFunc(keys, DateKey.Compare)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
