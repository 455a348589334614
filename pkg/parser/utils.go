package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// now is indirected so tests can freeze year inference.
var now = time.Now

// months maps Portuguese three-letter month abbreviations as printed on
// Brazilian statements.
var months = map[string]time.Month{
	"JAN": time.January,
	"FEV": time.February,
	"MAR": time.March,
	"ABR": time.April,
	"MAI": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August,
	"SET": time.September,
	"OUT": time.October,
	"NOV": time.November,
	"DEZ": time.December,
}

const monthAlternation = `JAN|FEV|MAR|ABR|MAI|JUN|JUL|AGO|SET|OUT|NOV|DEZ`

var (
	// Amounts in Brazilian formatting: thousands separator ".", decimal ",".
	amountPattern  = regexp.MustCompile(`(?:R\$\s*)?(\d{1,3}(?:\.\d{3})*,\d{2})`)
	trailingAmount = regexp.MustCompile(`(?:R\$\s*)?(\d{1,3}(?:\.\d{3})*,\d{2})\s*$`)

	// Date tokens anchored at the start of a line.
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
	monthNamePattern = regexp.MustCompile(`(?i)^(\d{1,2})\s+(` + monthAlternation + `)\b`)

	// Installment markers ("03/10") printed inside descriptions.
	installmentMarker = regexp.MustCompile(`\b\d{1,2}/\d{1,2}\b`)

	// Masked card number lines: a run of bullets/asterisks plus four digits.
	maskedCardPattern = regexp.MustCompile(`^[•●*]{2,}\s*\d{4}\s*$`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// parseAmount converts a Brazilian-formatted amount ("1.234,56", optionally
// prefixed with "R$") to a float64. Returns false for anything that does not
// parse to a finite, non-negative number.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	v := d.InexactFloat64()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// isoDate renders a calendar date in the ISO form used across all outputs.
func isoDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// parseSlashDate reads a DD/MM or DD/MM/YYYY token at the start of line. The
// year defaults to the current calendar year when the statement omits it.
// Returns the ISO date and the length of the consumed token.
func parseSlashDate(line string) (string, int, bool) {
	m := slashDatePattern.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", 0, false
	}
	year := now().Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}
	return isoDate(year, time.Month(month), day), len(m[0]), true
}

// parseMonthNameDate reads a "DD MMM" token (Portuguese month abbreviation)
// at the start of line, assuming the current calendar year.
func parseMonthNameDate(line string) (string, int, bool) {
	m := monthNamePattern.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	day, _ := strconv.Atoi(m[1])
	if day < 1 || day > 31 {
		return "", 0, false
	}
	month, ok := months[strings.ToUpper(m[2])]
	if !ok {
		return "", 0, false
	}
	return isoDate(now().Year(), month, day), len(m[0]), true
}

// parseAnyLineDate accepts either date style. Used by the fallback parser,
// which cannot assume a single issuer layout.
func parseAnyLineDate(line string) (string, int, bool) {
	if date, n, ok := parseSlashDate(line); ok {
		return date, n, ok
	}
	return parseMonthNameDate(line)
}

func normalizeSpace(s string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

// metadataWindow joins the first head and last tail lines of the text. Due
// dates and totals are conventionally printed near document boundaries, so
// metadata regexes never need to scan the full body.
func metadataWindow(lines []string, head, tail int) string {
	if len(lines) <= head+tail {
		return strings.Join(lines, "\n")
	}
	window := make([]string, 0, head+tail)
	window = append(window, lines[:head]...)
	window = append(window, lines[len(lines)-tail:]...)
	return strings.Join(window, "\n")
}
