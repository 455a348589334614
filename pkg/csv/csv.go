package csv

import (
	"bytes"
	"fmt"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

// FilterFunc decides whether a transaction makes it into the output.
type FilterFunc func(models.Transaction) bool

// Create renders parsed transactions as a Date,Description,Amount CSV. A
// nil filter includes everything.
func Create(records []models.Transaction, filter FilterFunc) []byte {
	var buf bytes.Buffer
	buf.WriteString("Date,Description,Amount\n")
	for _, r := range records {
		if filter == nil || filter(r) {
			buf.WriteString(fmt.Sprintf("%s,%s,%.2f\n",
				r.Date,
				r.Description,
				r.Amount))
		}
	}
	return buf.Bytes()
}
