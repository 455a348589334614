package parser

import "regexp"

// BTG Pactual statements use full DD/MM/YYYY dates and label the statement
// total as "Total da fatura".
func newBTG() *issuerParser {
	return &issuerParser{
		name:    "BTG Pactual",
		markers: []string{"btg pactual", "btg+"},
		style:   dateSlash,

		totalPattern:   regexp.MustCompile(`(?i)total da fatura\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
		duePattern:     regexp.MustCompile(`(?i)vencimento[:\s]*(\d{1,2}/\d{1,2}(?:/\d{4})?)`),
		minimumPattern: regexp.MustCompile(`(?i)(?:pagamento )?m[íi]nimo\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
	}
}
