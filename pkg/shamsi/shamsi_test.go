package shamsi

import (
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"1402/01/09", Date{1402, 1, 9}, false},
		{"1403/12/30", Date{1403, 12, 30}, false}, // leap year
		{"1402/12/30", Date{}, true},              // non-leap
		{"1402/13/01", Date{}, true},
		{"1402/06/32", Date{}, true},
		{"1402/00/10", Date{}, true},
		{"garbage", Date{}, true},
		{"", Date{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if s := (Date{1402, 1, 9}).String(); s != "1402/01/09" {
		t.Errorf("String() = %q, want zero-padded form", s)
	}
}

func TestIsLeapYear(t *testing.T) {
	leap := []int{1375, 1379, 1383, 1387, 1391, 1395, 1399, 1403}
	for _, y := range leap {
		if !IsLeapYear(y) {
			t.Errorf("IsLeapYear(%d) = false, want true", y)
		}
	}
	notLeap := []int{1400, 1401, 1402, 1404}
	for _, y := range notLeap {
		if IsLeapYear(y) {
			t.Errorf("IsLeapYear(%d) = true, want false", y)
		}
	}
}

func TestMonthDays(t *testing.T) {
	if got := MonthDays(1402, 1); got != 31 {
		t.Errorf("MonthDays(1402, 1) = %d, want 31", got)
	}
	if got := MonthDays(1402, 7); got != 30 {
		t.Errorf("MonthDays(1402, 7) = %d, want 30", got)
	}
	if got := MonthDays(1402, 12); got != 29 {
		t.Errorf("MonthDays(1402, 12) = %d, want 29", got)
	}
	if got := MonthDays(1403, 12); got != 30 {
		t.Errorf("MonthDays(1403, 12) = %d, want 30", got)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1402/01/09", "1402/01/09", 0},
		{"1402/01/09", "1402/01/10", -1},
		{"1402/02/01", "1402/01/31", 1},
		{"1403/01/01", "1402/12/29", 1},
		{"1401/12/29", "1402/01/01", -1},
	}
	for _, tt := range tests {
		if got := Compare(MustParse(tt.a), MustParse(tt.b)); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareStrings(t *testing.T) {
	if got := CompareStrings("bogus", "1402/01/01"); got != -1 {
		t.Errorf("malformed date should sort first, got %d", got)
	}
	if got := CompareStrings("1402/01/02", "1402/01/01"); got != 1 {
		t.Errorf("CompareStrings = %d, want 1", got)
	}
}

func TestInRange(t *testing.T) {
	start := MustParse("1402/01/01")
	end := MustParse("1402/12/29")
	if !InRange(MustParse("1402/06/15"), start, end) {
		t.Error("mid-year date should be in range")
	}
	if !InRange(start, start, end) || !InRange(end, start, end) {
		t.Error("range bounds are inclusive")
	}
	if InRange(MustParse("1403/01/01"), start, end) {
		t.Error("next year should be out of range")
	}
}

func TestInRangeStrings(t *testing.T) {
	if !InRangeStrings("1402/06/15", "1402/01/01", "1402/12/29") {
		t.Error("mid-year date should be in range")
	}
	if !InRangeStrings("1402/01/01", "1402/01/01", "1402/12/29") ||
		!InRangeStrings("1402/12/29", "1402/01/01", "1402/12/29") {
		t.Error("range bounds are inclusive")
	}
	if InRangeStrings("1403/01/01", "1402/01/01", "1402/12/29") {
		t.Error("next year should be out of range")
	}
	if InRangeStrings("bogus", "1402/01/01", "1402/12/29") {
		t.Error("malformed date should be out of range")
	}
}

func TestGregorianConversion(t *testing.T) {
	tests := []struct {
		shamsi    string
		gregorian time.Time
	}{
		{"1403/01/01", time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)},
		{"1402/01/01", time.Date(2023, time.March, 21, 0, 0, 0, 0, time.UTC)},
		{"1400/10/11", time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"1403/12/30", time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		d := MustParse(tt.shamsi)
		if got := d.ToTime(); !got.Equal(tt.gregorian) {
			t.Errorf("ToTime(%s) = %v, want %v", tt.shamsi, got, tt.gregorian)
		}
		if got := FromTime(tt.gregorian); got != d {
			t.Errorf("FromTime(%v) = %v, want %s", tt.gregorian, got, tt.shamsi)
		}
	}
}

func TestFromTimeIgnoresClockAndZone(t *testing.T) {
	// Any instant within the same UTC calendar day maps to the same date.
	tehran := time.FixedZone("IRST", int(3.5*3600))
	tests := []time.Time{
		time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 20, 23, 59, 59, 0, time.UTC),
		time.Date(2024, time.March, 20, 12, 30, 0, 0, tehran),
	}
	for _, ts := range tests {
		if got := FromTime(ts); got.String() != "1403/01/01" {
			t.Errorf("FromTime(%v) = %v, want 1403/01/01", ts, got)
		}
	}
}

func TestRoundTripAddDays(t *testing.T) {
	d := MustParse("1402/12/29")
	next := d.AddDays(1)
	if next.String() != "1403/01/01" {
		t.Errorf("AddDays over year boundary = %s, want 1403/01/01", next)
	}
	if back := next.AddDays(-1); back != d {
		t.Errorf("AddDays round trip = %v, want %v", back, d)
	}
}
