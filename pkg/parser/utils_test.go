package parser

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"1.234,56", 1234.56, true},
		{"26,28", 26.28, true},
		{"R$ 26,28", 26.28, true},
		{"R$1.000,00", 1000.00, true},
		{"0,00", 0.00, true},
		{"-26,28", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseAmount(tt.in)
		if ok != tt.valid {
			t.Errorf("parseAmount(%q): valid=%v, want %v", tt.in, ok, tt.valid)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSlashDate(t *testing.T) {
	withFrozenNow(t, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"05/04 UBER TRIP", "2025-04-05", true},
		{"05/04/2023 UBER TRIP", "2023-04-05", true},
		{"32/04 X", "", false},
		{"05/13 X", "", false},
		{"UBER 05/04", "", false},
	}

	for _, tt := range tests {
		got, _, ok := parseSlashDate(tt.in)
		if ok != tt.valid || got != tt.want {
			t.Errorf("parseSlashDate(%q) = %q/%v, want %q/%v", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}

func TestParseMonthNameDate(t *testing.T) {
	withFrozenNow(t, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	if got, _, ok := parseMonthNameDate("30 DEZ"); !ok || got != "2025-12-30" {
		t.Errorf("parseMonthNameDate(30 DEZ) = %q/%v", got, ok)
	}
	if got, _, ok := parseMonthNameDate("05 abr compra"); !ok || got != "2025-04-05" {
		t.Errorf("parseMonthNameDate(05 abr) = %q/%v", got, ok)
	}
	if _, _, ok := parseMonthNameDate("05 XYZ"); ok {
		t.Error("expected 05 XYZ to be rejected")
	}
}

func TestMetadataWindow(t *testing.T) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "line"
	}
	lines[0] = "head"
	lines[199] = "tail"

	window := metadataWindow(lines, 50, 50)
	if len(window) == 0 {
		t.Fatal("empty window")
	}
	// 100 lines joined by newlines
	count := 1
	for _, c := range window {
		if c == '\n' {
			count++
		}
	}
	if count != 100 {
		t.Errorf("expected 100 lines in window, got %d", count)
	}
}
