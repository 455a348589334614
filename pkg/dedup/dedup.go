// Package dedup scores freshly parsed statement transactions against a
// caller-supplied list of existing transactions and flags likely
// duplicates. It only scores: accepting or rejecting a match stays with the
// caller, since statement imports are reviewed by a person before being
// persisted.
package dedup

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/aissantos/finansix-web-sub000/pkg/models"
)

// DefaultThreshold is the minimum score a candidate needs to be reported.
const DefaultThreshold = 80

const (
	amountTolerance = 0.05

	amountPoints      = 40
	datePoints        = 30
	descriptionPoints = 30
)

var whitespacePattern = regexp.MustCompile(`\s+`)

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespacePattern.ReplaceAllString(s, " ")
}

// FindDuplicates compares every imported transaction against every existing
// one and returns at most one MatchScore per imported index: the
// highest-scoring existing transaction at or above the threshold. An amount
// difference beyond the tolerance disqualifies a candidate outright —
// statement imports represent exact charges, so amount is a hard gate, not
// a partial signal. Pass threshold <= 0 to use DefaultThreshold.
//
// The engine does not enforce a 1:1 assignment: two imported transactions
// may both pick the same existing transaction as their best match.
func FindDuplicates(imported []models.Transaction, existing []models.ExistingTransaction, threshold int) []models.MatchScore {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var matches []models.MatchScore
	for i, imp := range imported {
		bestIdx := -1
		bestScore := 0

		for j, ex := range existing {
			if math.Abs(imp.Amount-ex.Amount) >= amountTolerance {
				continue
			}
			score := amountPoints +
				dateScore(imp.Date, ex.TransactionDate) +
				int(math.Round(Similarity(imp.Description, ex.Description)*descriptionPoints))

			if score >= threshold && score > bestScore {
				bestIdx = j
				bestScore = score
			}
		}

		if bestIdx >= 0 {
			matches = append(matches, models.MatchScore{
				ImportedIndex: i,
				ExistingID:    existing[bestIdx].ID,
				Score:         bestScore,
				MatchType:     matchType(bestScore),
			})
		}
	}
	return matches
}

// dateScore awards full points for an exact calendar match and a reduced
// score when the dates are at most two days apart, absorbing settlement
// lag. Unparseable dates contribute nothing.
func dateScore(imported, existing string) int {
	a, errA := time.Parse("2006-01-02", imported)
	b, errB := time.Parse("2006-01-02", existing)
	if errA != nil || errB != nil {
		return 0
	}
	if a.Equal(b) {
		return datePoints
	}
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	if diff <= 48*time.Hour {
		return 20
	}
	return 0
}

func matchType(score int) string {
	switch {
	case score >= 100:
		return models.MatchExact
	case score >= 90:
		return models.MatchHighConfidence
	case score >= 80:
		return models.MatchLikely
	default:
		return models.MatchPossible
	}
}
