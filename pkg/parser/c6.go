package parser

import "regexp"

// C6 statements print transaction dates as day plus Portuguese month
// abbreviation ("05 ABR") instead of slash dates.
func newC6() *issuerParser {
	return &issuerParser{
		name:    "C6 Bank",
		markers: []string{"c6 bank", "c6 carbon"},
		style:   dateMonthName,

		totalPattern:   regexp.MustCompile(`(?i)valor desta fatura\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
		duePattern:     regexp.MustCompile(`(?i)vencimento[:\s]*(\d{1,2}/\d{1,2}(?:/\d{4})?)`),
		minimumPattern: regexp.MustCompile(`(?i)pagamento m[íi]nimo\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
	}
}
