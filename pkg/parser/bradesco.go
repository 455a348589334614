package parser

import "regexp"

// Bradesco uses the same "DD/MM description amount" line layout as Itaú but
// a different label vocabulary for the summary fields.
func newBradesco() *issuerParser {
	return &issuerParser{
		name:    "Bradesco",
		markers: []string{"bradesco"},
		style:   dateSlash,

		totalPattern:   regexp.MustCompile(`(?i)valor total\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
		duePattern:     regexp.MustCompile(`(?i)vencimento[:\s]*(\d{1,2}/\d{1,2}(?:/\d{4})?)`),
		minimumPattern: regexp.MustCompile(`(?i)pagamento m[íi]nimo\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
	}
}
