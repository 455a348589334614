// Package ledger loads the caller's existing transactions from the sources
// the application already keeps: CSV exports, Itaú XLS fatura exports and
// YNAB accounts. The deduplication engine compares freshly parsed
// statements against these.
package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

var dateFormats = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
}

// LoadCSV reads an existing-transaction ledger from CSV data. The header is
// scanned for id, date, description and amount columns (Portuguese or
// English names); rows without an id are assigned a generated one. Amounts
// accept Brazilian ("1.234,56") or plain decimal formatting and are stored
// by magnitude, since statement charges are always positive.
func LoadCSV(data []byte) ([]models.ExistingTransaction, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty file")
		}
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	if len(header) < 2 {
		// Probably comma-separated; re-read with the default delimiter.
		reader = csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		header, err = reader.Read()
		if err != nil {
			return nil, fmt.Errorf("error reading CSV header: %w", err)
		}
	}

	idIdx, dateIdx, descIdx, valueIdx := -1, -1, -1, -1
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case h == "id":
			idIdx = i
		case strings.Contains(h, "data") || strings.Contains(h, "date"):
			dateIdx = i
		case strings.Contains(h, "descrição") || strings.Contains(h, "descricao") ||
			strings.Contains(h, "histórico") || strings.Contains(h, "historico") ||
			strings.Contains(h, "description"):
			descIdx = i
		case strings.Contains(h, "valor") || strings.Contains(h, "amount"):
			valueIdx = i
		}
	}
	if dateIdx == -1 || valueIdx == -1 {
		return nil, fmt.Errorf("required columns not found in CSV")
	}

	var out []models.ExistingTransaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV record: %w", err)
		}
		if len(record) <= valueIdx || len(record) <= dateIdx {
			continue // skip malformed rows
		}

		date, ok := parseLedgerDate(strings.TrimSpace(record[dateIdx]))
		if !ok {
			continue
		}

		value, ok := parseLedgerAmount(strings.TrimSpace(record[valueIdx]))
		if !ok {
			continue
		}

		desc := ""
		if descIdx != -1 && len(record) > descIdx {
			desc = strings.TrimSpace(record[descIdx])
		}

		id := ""
		if idIdx != -1 && len(record) > idIdx {
			id = strings.TrimSpace(record[idIdx])
		}
		if id == "" {
			id = uuid.NewString()
		}

		out = append(out, models.ExistingTransaction{
			ID:              id,
			Amount:          math.Abs(value),
			TransactionDate: date,
			Description:     desc,
		})
	}

	return out, nil
}

func parseLedgerDate(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, format := range dateFormats {
		if d, err := time.Parse(format, s); err == nil {
			return d.Format("2006-01-02"), true
		}
	}
	return "", false
}

func parseLedgerAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "R$", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "") // remove thousand separators
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
