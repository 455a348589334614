package parser

import "regexp"

// Itaú statements print one transaction per line as "DD/MM description
// amount", with installment purchases carrying an "NN/NN" marker inside the
// description.
func newItau() *issuerParser {
	return &issuerParser{
		name:    "Itaú",
		markers: []string{"itaú", "itau unibanco", "itaucard"},
		style:   dateSlash,

		totalPattern:   regexp.MustCompile(`(?i)total desta fatura\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
		duePattern:     regexp.MustCompile(`(?i)vencimento[:\s]*(\d{1,2}/\d{1,2}(?:/\d{4})?)`),
		minimumPattern: regexp.MustCompile(`(?i)pagamento m[íi]nimo\D*?(\d{1,3}(?:\.\d{3})*,\d{2})`),
	}
}
