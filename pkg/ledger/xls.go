package ledger

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/google/uuid"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

// LoadItauXLS reads an Itaú fatura XLS export as an existing-transaction
// ledger. The workbook lists one card section per holder ("... - final NNNN
// (titular)"), followed by date/description/.../value rows.
func LoadItauXLS(filePath string) ([]models.ExistingTransaction, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	workbook, err := xls.OpenReader(file, "cp1252")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(1000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	var out []models.ExistingTransaction
	var inTransactions bool

	for _, row := range rows {
		if len(row) < 4 {
			continue
		}

		// Card holder sections mark the start of transaction rows.
		text := strings.TrimSpace(row[0])
		if strings.Contains(text, " - final ") {
			inTransactions = true
			continue
		}
		if !inTransactions {
			continue
		}

		// Skip header, total and section rows.
		lower := strings.ToLower(row[0])
		if row[0] == "" || row[0] == "data" ||
			strings.Contains(lower, "total") || strings.Contains(lower, "lançamentos") {
			continue
		}

		date, err := time.Parse("02/01/2006", row[0])
		if err != nil {
			continue
		}

		desc := strings.TrimSpace(row[1])
		if desc == "" {
			continue
		}

		value, ok := parseLedgerAmount(row[3])
		if !ok {
			continue
		}

		out = append(out, models.ExistingTransaction{
			ID:              uuid.NewString(),
			Amount:          math.Abs(value),
			TransactionDate: date.Format("2006-01-02"),
			Description:     desc,
		})
	}

	return out, nil
}
