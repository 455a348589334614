package parser

import (
	"github.com/charmbracelet/log"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

// BankParser is the contract every issuer variant satisfies. Detect must be
// cheap (substring probes) because the registry tries every candidate in
// order. Variants are stateless and side-effect-free.
type BankParser interface {
	Name() string
	Detect(text string) bool
	ParseMetadata(text string) models.Metadata
	ParseTransactions(text string) []models.Transaction
}

// Registry holds the issuer variants in priority order plus the fallback
// parser used when no variant claims the text. The list is assembled once
// and never mutated, so a single Registry can serve concurrent callers.
type Registry struct {
	parsers  []BankParser
	fallback BankParser
	logger   *log.Logger
}

// NewRegistry builds the registry with the supported issuers. Registration
// order encodes priority: the first variant whose detector matches wins.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		parsers: []BankParser{
			newItau(),
			newBradesco(),
			newSantander(),
			newC6(),
			newBTG(),
		},
		fallback: newDefaultParser(),
		logger:   logger,
	}
}

// Parse runs the statement text through the first issuer variant that
// detects it, or the fallback parser when none does. It never fails:
// malformed or unrecognized text degrades to fewer transactions and absent
// metadata, and the input is always echoed back in RawText.
func (r *Registry) Parse(text string) models.ParseResult {
	selected := r.fallback
	for _, p := range r.parsers {
		if p.Detect(text) {
			selected = p
			break
		}
	}
	r.logger.Debug("statement parser selected", "parser", selected.Name())

	transactions := selected.ParseTransactions(text)
	meta := selected.ParseMetadata(text)

	r.logger.Info("statement parsed",
		"parser", selected.Name(),
		"transactions", len(transactions),
		"due_date", meta.DueDate,
	)

	return models.ParseResult{
		Transactions:   transactions,
		TotalAmount:    meta.TotalAmount,
		DueDate:        meta.DueDate,
		MinimumPayment: meta.MinimumPayment,
		BankName:       meta.BankName,
		RawText:        text,
	}
}
