// Package detector infers recurring charges from a user's transaction history.
//
// Detection is a pure batch pass: filter out non-spending transactions, group by
// merchant, analyze each group as a whole and again split by day of month, then
// collapse duplicates. Persistence and identity continuity live with the caller,
// which uses MatchExisting before writing.
package detector

import (
	"time"

	"recurring-detector/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Whole-group candidates at or below this confidence are dropped. Clustered
// candidates are more targeted and skip the threshold.
const wholeGroupMinConfidence = 0.7

type Input struct {
	UserID              uuid.UUID
	Transactions        []*models.Transaction
	AccountIDs          []uuid.UUID
	ExcludedCategoryIDs []uuid.UUID
}

type Detector struct {
	analyzer *Analyzer
	logger   *zap.Logger
}

// New creates a detector for one run. labels maps category IDs to labels.
func New(labels map[uuid.UUID]string, now func() time.Time, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		analyzer: NewAnalyzer(labels, now),
		logger:   logger,
	}
}

// Detect returns deduplicated recurring candidates for in.UserID. Returned records
// have no ID yet.
func (d *Detector) Detect(in Input) []*models.RecurringTransaction {
	filtered := FilterTransactions(in.Transactions, in.AccountIDs, in.ExcludedCategoryIDs)
	groups := GroupByMerchant(filtered)

	d.logger.Debug("Transactions grouped",
		zap.Int("input", len(in.Transactions)),
		zap.Int("filtered", len(filtered)),
		zap.Int("merchants", groups.Len()),
	)

	var candidates []Candidate
	for _, merchant := range groups.Keys() {
		candidates = append(candidates, d.detectMerchant(merchant, groups.Transactions(merchant))...)
	}

	result := Deduplicate(candidates)
	for _, rec := range result {
		rec.UserID = in.UserID
	}
	return result
}

func (d *Detector) detectMerchant(merchant string, txs []*models.Transaction) []Candidate {
	var accepted []Candidate

	if whole := d.analyzer.AnalyzeSet(txs, merchant); whole != nil {
		if whole.Confidence > wholeGroupMinConfidence {
			accepted = append(accepted, Candidate{Record: whole, Pass: PassWholeGroup})
		} else {
			d.logger.Debug("Whole-group pattern below threshold",
				zap.String("merchant", merchant),
				zap.Float64("confidence", whole.Confidence),
			)
		}
	}

	for _, cluster := range ClusterByDayOfMonth(txs) {
		rec := d.analyzer.AnalyzeSet(cluster, merchant)
		if rec == nil {
			continue
		}
		if duplicatesAccepted(rec, accepted) {
			continue
		}
		accepted = append(accepted, Candidate{Record: rec, Pass: PassCluster})
	}

	return accepted
}
