package detector

import (
	"recurring-detector/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var matchAmountTolerance = decimal.NewFromInt(5)

// MatchExisting carries identity and user-set status from stored records onto fresh
// candidates. A stored record is eligible for a candidate when it has the same merchant
// name and an amount within $5; among eligible records the closest amount wins, then the
// closest next date, then the closest last date, then stored order. Each stored record
// matches at most once. Unmatched candidates get newID() and the active status.
// Candidates are copied, not modified.
//
// Two subscriptions from one merchant with identical prices and dates are
// indistinguishable; stored order decides between them.
func MatchExisting(candidates, existing []*models.RecurringTransaction, newID func() uuid.UUID) []*models.RecurringTransaction {
	if newID == nil {
		newID = uuid.New
	}
	consumed := make([]bool, len(existing))

	matched := make([]*models.RecurringTransaction, 0, len(candidates))
	for _, candidate := range candidates {
		rec := *candidate
		rec.ID = uuid.Nil
		rec.Status = models.RecurringStatusActive

		best := -1
		for i, prev := range existing {
			if consumed[i] || prev.MerchantName != rec.MerchantName {
				continue
			}
			if prev.Amount.Sub(rec.Amount).Abs().GreaterThan(matchAmountTolerance) {
				continue
			}
			if best < 0 || closerMatch(&rec, prev, existing[best]) {
				best = i
			}
		}

		if best >= 0 {
			prev := existing[best]
			consumed[best] = true
			rec.ID = prev.ID
			rec.CreatedAt = prev.CreatedAt
			if prev.Status.Valid() {
				rec.Status = prev.Status
			}
		} else {
			rec.ID = newID()
		}
		matched = append(matched, &rec)
	}
	return matched
}

// closerMatch reports whether a is a strictly better match for rec than b.
func closerMatch(rec, a, b *models.RecurringTransaction) bool {
	amountA := a.Amount.Sub(rec.Amount).Abs()
	amountB := b.Amount.Sub(rec.Amount).Abs()
	if cmp := amountA.Cmp(amountB); cmp != 0 {
		return cmp < 0
	}

	nextA := abs(daysBetween(a.NextDate, rec.NextDate))
	nextB := abs(daysBetween(b.NextDate, rec.NextDate))
	if nextA != nextB {
		return nextA < nextB
	}

	return abs(daysBetween(a.LastDate, rec.LastDate)) < abs(daysBetween(b.LastDate, rec.LastDate))
}
