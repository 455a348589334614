package parser

import "regexp"

// Santander statements carry full DD/MM/YYYY dates on transaction lines.
// The shared slash-date recognizer accepts both forms, so the only variant
// specifics are detection markers and metadata labels.
func newSantander() *issuerParser {
	return &issuerParser{
		name:    "Santander",
		markers: []string{"santander"},
		style:   dateSlash,

		totalPattern:   regexp.MustCompile(`(?i)total a pagar\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
		duePattern:     regexp.MustCompile(`(?i)(?:data de )?vencimento[:\s]*(\d{1,2}/\d{1,2}(?:/\d{4})?)`),
		minimumPattern: regexp.MustCompile(`(?i)pagamento m[íi]nimo\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
	}
}
