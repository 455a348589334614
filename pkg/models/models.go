package models

// Transaction is a single charge extracted from statement text. Date is an
// ISO calendar date (YYYY-MM-DD) regardless of how the statement printed it,
// and Amount is in major currency units, always strictly positive.
type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Metadata holds the best-effort statement summary fields. Pointer fields
// distinguish "not found in text" from a legitimate zero.
type Metadata struct {
	TotalAmount    *float64 `json:"totalAmount,omitempty"`
	DueDate        string   `json:"dueDate,omitempty"`
	MinimumPayment *float64 `json:"minimumPayment,omitempty"`
	BankName       string   `json:"bankName,omitempty"`
}

// ParseResult is the combined output of a statement parse: extracted
// transactions, summary metadata and the untouched input text so callers can
// audit what the parser saw.
type ParseResult struct {
	Transactions   []Transaction `json:"transactions"`
	TotalAmount    *float64      `json:"totalAmount,omitempty"`
	DueDate        string        `json:"dueDate,omitempty"`
	MinimumPayment *float64      `json:"minimumPayment,omitempty"`
	BankName       string        `json:"bankName,omitempty"`
	RawText        string        `json:"rawText"`
}

// ExistingTransaction is a transaction already known to the caller, used as
// the comparison base when scoring freshly parsed transactions for
// duplicates. TransactionDate is an ISO calendar date.
type ExistingTransaction struct {
	ID              string  `json:"id"`
	Amount          float64 `json:"amount"`
	TransactionDate string  `json:"transaction_date"`
	Description     string  `json:"description"`
}

// Match types, from strongest to weakest.
const (
	MatchExact          = "exact"
	MatchHighConfidence = "high_confidence"
	MatchLikely         = "likely"
	MatchPossible       = "possible"
)

// MatchScore links an imported transaction (by position in the parsed list)
// to its best-scoring existing transaction. Score is 0-100.
type MatchScore struct {
	ImportedIndex int    `json:"importedIndex"`
	ExistingID    string `json:"existingId"`
	Score         int    `json:"score"`
	MatchType     string `json:"matchType"`
}
