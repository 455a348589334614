package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

// defaultParser handles layouts where a single transaction's fields are
// fragmented across consecutive lines, as produced by text extraction from
// visually laid-out documents: the date on its own line, then a masked card
// marker, the description, and finally the amount.
type defaultParser struct{}

func newDefaultParser() *defaultParser { return &defaultParser{} }

func (p *defaultParser) Name() string { return "default" }

// Detect always claims the text; the registry only consults the fallback
// after every issuer variant has declined.
func (p *defaultParser) Detect(string) bool { return true }

// How many lines past a date line we search for the matching amount before
// giving up on the candidate.
const lookaheadLimit = 8

// Window for fallback metadata extraction.
const (
	fallbackHeadLines = 30
	fallbackTailLines = 20
)

func (p *defaultParser) ParseTransactions(text string) []models.Transaction {
	lines := strings.Split(text, "\n")
	var out []models.Transaction

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		date, dateEnd, ok := parseAnyLineDate(line)
		if !ok {
			continue
		}
		rest := line[dateEnd:]

		// Single-line transaction: the amount trails the same line.
		if m := trailingAmount.FindStringSubmatchIndex(rest); m != nil {
			if amount, ok := parseAmount(rest[m[2]:m[3]]); ok {
				p.emit(&out, date, []string{rest[:m[0]]}, amount)
			}
			continue
		}

		// Fragmented: collect description fragments until an amount line
		// appears. A fresh date aborts the candidate, since that line opens
		// the next transaction.
		parts := []string{rest}
		consumed := 0
		found := false
		var amount float64

		for j := i + 1; j <= i+lookaheadLimit && j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || maskedCardPattern.MatchString(next) {
				consumed = j - i
				continue
			}
			if _, _, isDate := parseAnyLineDate(next); isDate {
				break
			}
			if m := amountPattern.FindStringSubmatchIndex(next); m != nil {
				if a, ok := parseAmount(next[m[2]:m[3]]); ok {
					parts = append(parts, next[:m[0]], next[m[1]:])
					amount = a
					consumed = j - i
					found = true
				}
				break
			}
			parts = append(parts, next)
			consumed = j - i
		}

		if !found {
			continue
		}
		i += consumed
		p.emit(&out, date, parts, amount)
	}

	return out
}

func (p *defaultParser) emit(out *[]models.Transaction, date string, parts []string, amount float64) {
	desc := cleanDescription(strings.Join(parts, " "))
	if amount <= 0 || utf8.RuneCountInString(desc) <= 2 || isHeaderDescription(desc) {
		return
	}
	*out = append(*out, models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
	})
}

// cleanDescription collapses whitespace and removes the dash/bullet
// artifacts extraction leaves at line starts.
func cleanDescription(s string) string {
	s = normalizeSpace(s)
	s = strings.TrimLeft(s, "-–•·* ")
	return strings.TrimSpace(s)
}

// Reconstructed descriptions that are really statement headers, not
// purchases.
var headerDescriptionKeywords = []string{
	"total",
	"pagamento",
	"saldo",
	"fatura anterior",
}

func isHeaderDescription(desc string) bool {
	lower := strings.ToLower(desc)
	if lower == "fatura" {
		return true
	}
	for _, kw := range headerDescriptionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Metadata label patterns for the fallback: since the issuer is unknown, it
// accepts the label vocabularies of every supported bank.
var (
	fallbackTotalPattern = regexp.MustCompile(
		`(?i)(?:total desta fatura|total da fatura|valor desta fatura|valor total|total a pagar)\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`)
	fallbackMinimumPattern = regexp.MustCompile(
		`(?i)pagamento m[íi]nimo\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`)
	fallbackDueSlashPattern = regexp.MustCompile(
		`(?i)vencimento[:\s]*(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
	fallbackDueMonthPattern = regexp.MustCompile(
		`(?i)vencimento[:\s]*(\d{1,2})\s+(` + monthAlternation + `)\b`)
)

func (p *defaultParser) ParseMetadata(text string) models.Metadata {
	window := metadataWindow(strings.Split(text, "\n"), fallbackHeadLines, fallbackTailLines)

	meta := models.Metadata{}
	meta.TotalAmount = findAmountLabel(fallbackTotalPattern, window)
	meta.MinimumPayment = findAmountLabel(fallbackMinimumPattern, window)
	meta.DueDate = p.parseDueDate(window)
	return meta
}

func (p *defaultParser) parseDueDate(window string) string {
	if m := fallbackDueSlashPattern.FindStringSubmatch(window); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return ""
		}
		if m[3] != "" {
			year, _ := strconv.Atoi(m[3])
			return isoDate(year, time.Month(month), day)
		}
		return isoDate(inferDueYear(time.Month(month)), time.Month(month), day)
	}
	if m := fallbackDueMonthPattern.FindStringSubmatch(window); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := months[strings.ToUpper(m[2])]
		if !ok || day < 1 || day > 31 {
			return ""
		}
		return isoDate(inferDueYear(month), month, day)
	}
	return ""
}

// inferDueYear assumes the current year, except for a December statement
// whose due date falls in January: that bill is due next year. Other
// year-boundary combinations are left uncorrected.
func inferDueYear(dueMonth time.Month) int {
	current := now()
	if dueMonth == time.January && current.Month() == time.December {
		return current.Year() + 1
	}
	return current.Year()
}
