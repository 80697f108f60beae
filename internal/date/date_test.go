package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-01-30", 1, "2024-02-29"},
		{"2024-03-31", 1, "2024-04-30"},
		{"2024-05-31", 4, "2024-09-30"},
		{"2024-02-29", 12, "2025-02-28"},
		{"2024-11-15", 2, "2025-01-15"},
		{"2024-12-31", 2, "2025-02-28"},
		{"2024-01-15", -1, "2023-12-15"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2023-03-31", -13, "2022-02-28"},
		{"2024-06-10", 0, "2024-06-10"},
		{"2024-06-10", 25, "2026-07-10"},
	}
	for _, tc := range cases {
		got := MustParse(tc.in).AddMonths(tc.n)
		if got.String() != tc.want {
			t.Errorf("AddMonths(%s, %d) = %s, want %s", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestAddWeeks(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-01-01", 1, "2024-01-08"},
		{"2024-02-26", 1, "2024-03-04"},
		{"2024-12-30", 1, "2025-01-06"},
		{"2024-01-08", -1, "2024-01-01"},
		{"2024-01-01", 52, "2024-12-30"},
	}
	for _, tc := range cases {
		got := MustParse(tc.in).AddWeeks(tc.n)
		if got.String() != tc.want {
			t.Errorf("AddWeeks(%s, %d) = %s, want %s", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestAddQuarters(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-04-30"},
		{"2023-11-30", 1, "2024-02-29"},
		{"2024-02-29", 4, "2025-02-28"},
		{"2024-04-30", -1, "2024-01-30"},
	}
	for _, tc := range cases {
		got := MustParse(tc.in).AddQuarters(tc.n)
		if got.String() != tc.want {
			t.Errorf("AddQuarters(%s, %d) = %s, want %s", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestIsLeap(t *testing.T) {
	cases := map[int]bool{
		2024: true,
		2023: false,
		1900: false,
		2000: true,
		2100: false,
		1600: true,
	}
	for year, want := range cases {
		if got := IsLeap(year); got != want {
			t.Errorf("IsLeap(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestOnOrBefore(t *testing.T) {
	a := MustParse("2024-03-15")
	b := MustParse("2024-03-16")
	if !a.OnOrBefore(a) {
		t.Error("a date must be on or before itself")
	}
	if !a.OnOrBefore(b) {
		t.Errorf("%s should be on or before %s", a, b)
	}
	if b.OnOrBefore(a) {
		t.Errorf("%s should not be on or before %s", b, a)
	}
}

func TestNewNormalizesOverflow(t *testing.T) {
	got := New(2024, time.February, 30)
	if got.String() != "2024-03-01" {
		t.Errorf("New(2024, Feb, 30) = %s, want 2024-03-01", got)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2024-1-5")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if d.String() != "2024-01-05" {
		t.Errorf("got %s, want 2024-01-05", d)
	}
	if _, err := Parse("not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2024-02-29")
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"2024-02-29"` {
		t.Errorf("marshal = %s, want %q", raw, "2024-02-29")
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != d {
		t.Errorf("round trip changed date: %s != %s", back, d)
	}
}
