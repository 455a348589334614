package parser

import (
	"regexp"
	"strings"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

type dateStyle int

const (
	dateSlash dateStyle = iota // DD/MM or DD/MM/YYYY
	dateMonthName              // DD MMM (Portuguese abbreviation)
)

// Window for issuer metadata extraction: labels like "Vencimento" and
// "Total desta fatura" sit near the document boundaries.
const (
	issuerHeadLines = 50
	issuerTailLines = 50
)

// issuerParser is the shared single-line extraction engine. Each supported
// bank is a configuration of it: detection markers, the date style its
// statements print, and the metadata label vocabulary.
type issuerParser struct {
	name    string
	markers []string // lowercase substrings, any match claims the text
	style   dateStyle

	totalPattern   *regexp.Regexp
	duePattern     *regexp.Regexp
	minimumPattern *regexp.Regexp
}

func (p *issuerParser) Name() string { return p.name }

func (p *issuerParser) Detect(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range p.markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Structural lines interleaved with transactions: running balances, payment
// records and previous-balance markers. Never transactions.
var excludedLineKeywords = []string{
	"saldo anterior",
	"saldo atual",
	"saldo total",
	"saldo em",
	"pagamento efetuado",
	"pagamento recebido",
	"pagamento de fatura",
	"pgto",
}

func isExcludedLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range excludedLineKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ParseTransactions extracts one transaction per physical line: date,
// description (installment markers stripped) and a trailing amount. Lines
// that fail the pattern are statement noise and are silently skipped.
func (p *issuerParser) ParseTransactions(text string) []models.Transaction {
	var out []models.Transaction
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isExcludedLine(line) {
			continue
		}

		date, dateEnd, ok := p.parseDate(line)
		if !ok {
			continue
		}

		m := trailingAmount.FindStringSubmatchIndex(line)
		if m == nil || m[0] < dateEnd {
			continue
		}
		amount, ok := parseAmount(line[m[2]:m[3]])
		if !ok || amount <= 0 {
			continue
		}

		desc := line[dateEnd:m[0]]
		desc = installmentMarker.ReplaceAllString(desc, " ")
		desc = normalizeSpace(desc)
		if desc == "" {
			continue
		}

		out = append(out, models.Transaction{
			Date:        date,
			Description: desc,
			Amount:      amount,
		})
	}
	return out
}

func (p *issuerParser) parseDate(line string) (string, int, bool) {
	if p.style == dateMonthName {
		return parseMonthNameDate(line)
	}
	return parseSlashDate(line)
}

// ParseMetadata runs the issuer's label regexes over the boundary window.
// Every field is best-effort: a label that is missing, or whose value does
// not parse cleanly, is simply left absent.
func (p *issuerParser) ParseMetadata(text string) models.Metadata {
	window := metadataWindow(strings.Split(text, "\n"), issuerHeadLines, issuerTailLines)

	meta := models.Metadata{BankName: p.name}
	meta.TotalAmount = findAmountLabel(p.totalPattern, window)
	meta.MinimumPayment = findAmountLabel(p.minimumPattern, window)
	if m := p.duePattern.FindStringSubmatch(window); m != nil {
		if date, _, ok := parseSlashDate(m[1]); ok {
			meta.DueDate = date
		}
	}
	return meta
}

func findAmountLabel(pattern *regexp.Regexp, window string) *float64 {
	m := pattern.FindStringSubmatch(window)
	if m == nil {
		return nil
	}
	v, ok := parseAmount(m[1])
	if !ok {
		return nil
	}
	return &v
}
