package detector

import (
	"sort"

	"recurring-detector/internal/models"

	"github.com/shopspring/decimal"
)

// Pass identifies which detection pass produced a candidate.
type Pass int

const (
	PassWholeGroup Pass = iota
	PassCluster
)

func (p Pass) String() string {
	if p == PassCluster {
		return "cluster"
	}
	return "whole_group"
}

type Candidate struct {
	Record *models.RecurringTransaction
	Pass   Pass
}

var dedupAmountTolerance = decimal.NewFromInt(1)

const dedupNextDateGap = 3

// sameSubscription: same merchant, amounts under $1 apart, next dates under 3 days apart.
func sameSubscription(a, b *models.RecurringTransaction) bool {
	if a.MerchantName != b.MerchantName {
		return false
	}
	if a.Amount.Sub(b.Amount).Abs().GreaterThanOrEqual(dedupAmountTolerance) {
		return false
	}
	return abs(daysBetween(a.NextDate, b.NextDate)) < dedupNextDateGap
}

// Deduplicate collapses candidates describing the same subscription, keeping the one with
// higher confidence. Ties go to the whole-group pass, then to the earlier candidate.
// Survivors keep their input order.
func Deduplicate(candidates []Candidate) []*models.RecurringTransaction {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := candidates[order[i]], candidates[order[j]]
		if a.Record.Confidence != b.Record.Confidence {
			return a.Record.Confidence > b.Record.Confidence
		}
		return a.Pass < b.Pass
	})

	kept := make([]bool, len(candidates))
	var winners []int
	for _, idx := range order {
		dup := false
		for _, w := range winners {
			if sameSubscription(candidates[w].Record, candidates[idx].Record) {
				dup = true
				break
			}
		}
		if !dup {
			winners = append(winners, idx)
			kept[idx] = true
		}
	}

	result := make([]*models.RecurringTransaction, 0, len(winners))
	for i, c := range candidates {
		if kept[i] {
			result = append(result, c.Record)
		}
	}
	return result
}
