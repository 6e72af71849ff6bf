// Package shamsi provides Persian (Jalali) calendar date utilities.
// Dates are handled as zero-padded "YYYY/MM/DD" strings throughout the
// platform, e.g. "1402/01/09".
package shamsi

import (
	"fmt"
	"time"
)

// Layout is the canonical string form of a Shamsi date.
const Layout = "%04d/%02d/%02d"

// Date is a calendar date in the Jalali calendar.
type Date struct {
	Year  int
	Month int // 1..12
	Day   int // 1..31
}

// String formats the date as zero-padded YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf(Layout, d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Parse parses a zero-padded YYYY/MM/DD string into a Date.
func Parse(s string) (Date, error) {
	var d Date
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &d.Year, &d.Month, &d.Day); err != nil {
		return Date{}, fmt.Errorf("parse shamsi date %q: %w", s, err)
	}
	if !d.Valid() {
		return Date{}, fmt.Errorf("invalid shamsi date %q", s)
	}
	return d, nil
}

// MustParse parses s, panicking on error. Use only for constants and tests.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsValid reports whether s is a well-formed Shamsi date string.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Valid reports whether the date's fields form a real calendar date.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= MonthDays(d.Year, d.Month)
}

// MonthDays returns the number of days in the given Jalali month.
func MonthDays(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	case IsLeapYear(year):
		return 30
	default:
		return 29
	}
}

// IsLeapYear reports whether the given Jalali year is a leap year,
// using the 33-year arithmetic cycle.
func IsLeapYear(year int) bool {
	r := year % 33
	if r < 0 {
		r += 33
	}
	switch r {
	case 1, 5, 9, 13, 17, 22, 26, 30:
		return true
	}
	return false
}

// Compare compares two dates field-wise (year, then month, then day).
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func Compare(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	default:
		return sign(a.Day - b.Day)
	}
}

// CompareStrings compares two date strings field-wise.
// Malformed inputs sort before any valid date.
func CompareStrings(a, b string) int {
	da, errA := Parse(a)
	db, errB := Parse(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return Compare(da, db)
}

// InRange reports whether d falls within [start, end] inclusive.
func InRange(d, start, end Date) bool {
	return Compare(d, start) >= 0 && Compare(d, end) <= 0
}

// InRangeStrings reports whether date string d falls within [start, end]
// inclusive, comparing field-wise via CompareStrings.
func InRangeStrings(d, start, end string) bool {
	return CompareStrings(d, start) >= 0 && CompareStrings(d, end) <= 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Epoch offsets for the civil Jalali <-> Julian day conversion.
const (
	jalaliEpoch    = 1948320 // JDN of Farvardin 1, year 1
	gregorianEpoch = 1721425 // JDN of December 31, 1 BCE (proleptic)
	unixEpochJDN   = 2440588 // JDN of January 1, 1970
)

// daysBeforeMonth is the cumulative day count before each Jalali month.
var daysBeforeMonth = [12]int{0, 31, 62, 93, 124, 155, 186, 216, 246, 276, 306, 336}

// julianDay converts a Jalali date to its Julian day number.
func (d Date) julianDay() int {
	// Years since the start of the current 33-year cycle.
	base := d.Year - 1
	cycles := base / 33
	rem := base % 33
	if rem < 0 {
		cycles--
		rem += 33
	}
	days := cycles*12053 + rem*365 + leapsBefore(rem)
	return jalaliEpoch + days + daysBeforeMonth[d.Month-1] + (d.Day - 1)
}

// leapsBefore counts leap years among the first n years of a 33-year cycle.
func leapsBefore(n int) int {
	count := 0
	for _, leap := range [8]int{1, 5, 9, 13, 17, 22, 26, 30} {
		// Year numbers within the cycle are 1-based.
		if leap <= n {
			count++
		}
	}
	return count
}

// fromJulianDay converts a Julian day number to a Jalali date.
func fromJulianDay(jdn int) Date {
	offset := jdn - jalaliEpoch
	cycles := offset / 12053
	rem := offset % 12053
	if rem < 0 {
		cycles--
		rem += 12053
	}

	year := cycles*33 + 1
	for {
		yearDays := 365
		if IsLeapYear(year) {
			yearDays = 366
		}
		if rem < yearDays {
			break
		}
		rem -= yearDays
		year++
	}

	month := 1
	for month < 12 && rem >= daysBeforeMonth[month] {
		// Guard the last month boundary against leap-day overflow.
		if rem-daysBeforeMonth[month-1] < MonthDays(year, month) {
			break
		}
		month++
	}
	day := rem - daysBeforeMonth[month-1] + 1
	return Date{Year: year, Month: month, Day: day}
}

// ToTime converts a Jalali date to a Gregorian time.Time at midnight UTC.
func (d Date) ToTime() time.Time {
	days := d.julianDay() - gregorianEpoch
	base := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, days-1)
}

// FromTime converts a Gregorian time to a Jalali date (UTC calendar day).
// The day count comes from the Unix timestamp; a time.Duration spanning
// back to the calendar base would overflow.
func FromTime(t time.Time) Date {
	secs := t.UTC().Unix()
	days := int(secs / 86400)
	if secs < 0 && secs%86400 != 0 {
		days--
	}
	return fromJulianDay(unixEpochJDN + days)
}

// Today returns the current Jalali date as a canonical string.
func Today() string {
	return FromTime(time.Now()).String()
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return fromJulianDay(d.julianDay() + n)
}
