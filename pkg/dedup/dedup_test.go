package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"uber trip", "uber trip", 0},
		{"uber trip", "uber trip sao paulo", 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "Levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestSimilarityNormalizes(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Uber  Trip", "uber trip"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Less(t, Similarity("mercado", "posto"), 0.5)
}

func imported(date, desc string, amount float64) models.Transaction {
	return models.Transaction{Date: date, Description: desc, Amount: amount}
}

func existing(id, date, desc string, amount float64) models.ExistingTransaction {
	return models.ExistingTransaction{ID: id, TransactionDate: date, Description: desc, Amount: amount}
}

func TestExactMatchScoresHundred(t *testing.T) {
	matches := FindDuplicates(
		[]models.Transaction{imported("2025-03-15", "Uber Trip", 26.28)},
		[]models.ExistingTransaction{existing("tx-1", "2025-03-15", "Uber Trip", 26.28)},
		0,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].ImportedIndex)
	assert.Equal(t, "tx-1", matches[0].ExistingID)
	assert.Equal(t, 100, matches[0].Score)
	assert.Equal(t, models.MatchExact, matches[0].MatchType)
}

func TestAmountWithinToleranceStillExact(t *testing.T) {
	matches := FindDuplicates(
		[]models.Transaction{imported("2025-03-15", "Uber Trip", 26.28)},
		[]models.ExistingTransaction{existing("tx-1", "2025-03-15", "Uber Trip", 26.29)},
		0,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, 100, matches[0].Score)
	assert.Equal(t, models.MatchExact, matches[0].MatchType)
}

func TestAmountMismatchIsAHardGate(t *testing.T) {
	// Identical date and description cannot rescue an amount mismatch.
	matches := FindDuplicates(
		[]models.Transaction{imported("2025-03-15", "Uber Trip", 100.00)},
		[]models.ExistingTransaction{existing("tx-1", "2025-03-15", "Uber Trip", 99.00)},
		0,
	)
	assert.Empty(t, matches)
}

func TestDescriptionSuffixScoresAboveThreshold(t *testing.T) {
	matches := FindDuplicates(
		[]models.Transaction{imported("2025-03-15", "Uber Trip", 26.28)},
		[]models.ExistingTransaction{existing("tx-1", "2025-03-15", "Uber Trip Sao Paulo", 26.28)},
		0,
	)

	require.Len(t, matches, 1)
	assert.Greater(t, matches[0].Score, 80)
	assert.Equal(t, models.MatchLikely, matches[0].MatchType)
}

func TestDateWithinTwoDaysIsHighConfidence(t *testing.T) {
	matches := FindDuplicates(
		[]models.Transaction{imported("2025-03-15", "Uber Trip", 26.28)},
		[]models.ExistingTransaction{existing("tx-1", "2025-03-17", "Uber Trip", 26.28)},
		0,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, 90, matches[0].Score)
	assert.Equal(t, models.MatchHighConfidence, matches[0].MatchType)
}

func TestBestScoringExistingWins(t *testing.T) {
	matches := FindDuplicates(
		[]models.Transaction{imported("2025-03-15", "Uber Trip", 26.28)},
		[]models.ExistingTransaction{
			existing("near", "2025-03-17", "Uber Trip", 26.28),
			existing("exact", "2025-03-15", "Uber Trip", 26.28),
		},
		0,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, "exact", matches[0].ExistingID)
	assert.Equal(t, 100, matches[0].Score)
}

func TestBelowThresholdProducesNoMatch(t *testing.T) {
	matches := FindDuplicates(
		[]models.Transaction{imported("2025-03-15", "mercado", 26.28)},
		[]models.ExistingTransaction{existing("tx-1", "2025-01-01", "posto", 26.28)},
		0,
	)
	assert.Empty(t, matches)
}

func TestLoweredThresholdReachesPossible(t *testing.T) {
	// Amount and date match but the descriptions share nothing: 70 points,
	// only reportable when the caller lowers the threshold.
	matches := FindDuplicates(
		[]models.Transaction{imported("2025-03-15", "abcdef", 26.28)},
		[]models.ExistingTransaction{existing("tx-1", "2025-03-15", "zzzzzz", 26.28)},
		70,
	)

	require.Len(t, matches, 1)
	assert.Equal(t, 70, matches[0].Score)
	assert.Equal(t, models.MatchPossible, matches[0].MatchType)
}

func TestOneMatchPerImportedTransaction(t *testing.T) {
	// Two imported rows may independently pick the same existing
	// transaction; the engine does not enforce a 1:1 assignment.
	matches := FindDuplicates(
		[]models.Transaction{
			imported("2025-03-15", "Uber Trip", 26.28),
			imported("2025-03-15", "Uber Trip", 26.28),
		},
		[]models.ExistingTransaction{existing("tx-1", "2025-03-15", "Uber Trip", 26.28)},
		0,
	)

	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].ImportedIndex)
	assert.Equal(t, 1, matches[1].ImportedIndex)
	assert.Equal(t, matches[0].ExistingID, matches[1].ExistingID)
}
