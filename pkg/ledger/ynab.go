package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/brunomvsouza/ynab.go"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

// YNABSource fetches existing transactions from a YNAB account so parsed
// statements can be deduplicated against the budget before import.
type YNABSource struct {
	client ynab.ClientServicer
}

// NewYNABSource creates a source authenticated with the given personal
// access token.
func NewYNABSource(token string) *YNABSource {
	return &YNABSource{client: ynab.NewClient(token)}
}

// Existing returns the account's transactions mapped to the engine's
// existing-transaction shape. YNAB amounts are milliunits; they are
// converted to major units and stored by magnitude. When from and to are
// non-empty ISO dates, transactions outside the window are dropped —
// callers typically pass the parsed statement's date range with a few days
// of slack.
func (s *YNABSource) Existing(budgetID, accountID, from, to string) ([]models.ExistingTransaction, error) {
	txs, err := s.client.Transaction().GetTransactionsByAccount(budgetID, accountID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch YNAB transactions: %w", err)
	}

	out := make([]models.ExistingTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		date := tx.Date.Format("2006-01-02")
		if !inWindow(date, from, to) {
			continue
		}
		desc := ""
		if tx.PayeeName != nil {
			desc = *tx.PayeeName
		}
		out = append(out, models.ExistingTransaction{
			ID:              tx.ID,
			Amount:          math.Abs(float64(tx.Amount) / 1000.0),
			TransactionDate: date,
			Description:     desc,
		})
	}
	return out, nil
}

func inWindow(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// DateWindow computes the min/max dates of the parsed transactions widened
// by slack days on each side, the window recommended when fetching existing
// transactions for deduplication. Empty input yields empty bounds.
func DateWindow(transactions []models.Transaction, slack int) (from, to string) {
	var minDate, maxDate time.Time
	for _, tx := range transactions {
		d, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			continue
		}
		if minDate.IsZero() || d.Before(minDate) {
			minDate = d
		}
		if maxDate.IsZero() || d.After(maxDate) {
			maxDate = d
		}
	}
	if minDate.IsZero() {
		return "", ""
	}
	from = minDate.AddDate(0, 0, -slack).Format("2006-01-02")
	to = maxDate.AddDate(0, 0, slack).Format("2006-01-02")
	return from, to
}
