package detector

import (
	"math"
	"time"

	"recurring-detector/internal/models"

	"github.com/google/uuid"
)

const (
	// Charges closer together than this are treated as one (auth + settlement, split charges).
	noiseWindowDays = 4

	twoPointMinDays       = 28
	twoPointMaxDays       = 31
	twoPointAmountEpsilon = 0.01
	twoPointMaxDayDrift   = 1
	twoPointConfidence    = 0.85

	utilityMinMeanDays = 25
	utilityMaxMeanDays = 100
	utilityConfidence  = 0.80

	habitAmountCeiling     = 50.0
	habitMaxAmountVariance = 1.0
	habitMaxDayStddev      = 3.0

	volatileAmountVariance = 2000.0
	volatilePenalty        = 0.1

	minConfidence = 0.1
	maxConfidence = 1.0

	utilityMissedCycles = 2.0
)

// frequencyRule matches a mean interval within tolerance and a stddev below maxStddev.
// A zero maxStddev disables the stddev check.
type frequencyRule struct {
	frequency  models.Frequency
	target     float64
	tolerance  float64
	maxStddev  float64
	confidence float64
}

// Evaluated in order; the first match wins.
var frequencyRules = []frequencyRule{
	{models.FrequencyWeekly, 7, 2, 2, 0.90},
	{models.FrequencyBiWeekly, 14, 3, 3, 0.85},
	{models.FrequencyMonthly, 30.5, 5, 5, 0.95},
	{models.FrequencyMonthly, 61, 10, 10, 0.85},   // one skipped month
	{models.FrequencyMonthly, 91.5, 10, 10, 0.80}, // two skipped months
	{models.FrequencyYearly, 365, 10, 0, 0.80},
}

var missedCycleTolerance = map[models.Frequency]float64{
	models.FrequencyWeekly:   2,
	models.FrequencyBiWeekly: 1,
	models.FrequencyMonthly:  1,
	models.FrequencyYearly:   0.2,
}

// Analyzer decides whether one merchant's transactions form a recurring pattern.
type Analyzer struct {
	labels map[uuid.UUID]string
	now    func() time.Time
}

// NewAnalyzer creates an analyzer that resolves category labels from labels and
// measures staleness against now. A nil now uses time.Now.
func NewAnalyzer(labels map[uuid.UUID]string, now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	if labels == nil {
		labels = map[uuid.UUID]string{}
	}
	return &Analyzer{labels: labels, now: now}
}

// AnalyzeSet returns a recurring candidate for txs or nil when no pattern is found.
// txs is not modified.
func (a *Analyzer) AnalyzeSet(txs []*models.Transaction, merchantName string) *models.RecurringTransaction {
	if len(txs) < 2 {
		return nil
	}

	sorted := append([]*models.Transaction(nil), txs...)
	sortByDate(sorted)
	latest := sorted[len(sorted)-1]

	unique := collapseNoise(sorted)
	if len(unique) < 2 {
		return nil
	}

	class := classify(a.categoryLabel(latest))
	if class == classHardExcluded {
		return nil
	}

	var (
		frequency  models.Frequency
		confidence float64
	)

	if len(unique) == 2 {
		if !isNewMonthlySubscription(unique[0], unique[1]) {
			return nil
		}
		frequency, confidence = models.FrequencyMonthly, twoPointConfidence
	} else {
		intervals := make([]float64, 0, len(unique)-1)
		for i := 1; i < len(unique); i++ {
			intervals = append(intervals, daysBetween(unique[i-1].Date, unique[i].Date))
		}

		var ok bool
		frequency, confidence, ok = classifyIntervals(mean(intervals), stddev(intervals), class)
		if !ok {
			return nil
		}

		amounts := absAmounts(unique)
		amountVariance := variance(amounts)

		if class == classVariable && mean(amounts) < habitAmountCeiling {
			if amountVariance > habitMaxAmountVariance || stddev(daysOfMonth(unique)) > habitMaxDayStddev {
				return nil
			}
		}

		if amountVariance > volatileAmountVariance && class != classUtility {
			confidence -= volatilePenalty
		}
	}

	lastDate := dateOnly(unique[len(unique)-1].Date)
	nextDate := frequency.Next(lastDate)

	if a.isStale(nextDate, frequency, class) {
		return nil
	}

	return &models.RecurringTransaction{
		MerchantName: merchantName,
		Description:  latest.Description,
		Amount:       latest.Amount.Abs(),
		Frequency:    frequency,
		Status:       models.RecurringStatusActive,
		LastDate:     lastDate,
		NextDate:     nextDate,
		Confidence:   roundTo(clamp(confidence, minConfidence, maxConfidence), 2),
		IconURL:      latest.IconURL,
		CategoryID:   latest.CategoryID,
	}
}

func (a *Analyzer) categoryLabel(tx *models.Transaction) string {
	if tx.CategoryID == nil {
		return ""
	}
	return a.labels[*tx.CategoryID]
}

// isStale reports whether nextDate is overdue by more than the allowed number of missed cycles.
func (a *Analyzer) isStale(nextDate time.Time, frequency models.Frequency, class categoryClass) bool {
	tolerance := missedCycleTolerance[frequency]
	if class == classUtility {
		tolerance = utilityMissedCycles
	}
	daysPastDue := daysBetween(nextDate, a.now())
	return daysPastDue > frequency.CycleDays()*tolerance
}

// collapseNoise keeps the first transaction and every later one at least
// noiseWindowDays after the previously kept transaction. sorted must be date-ascending.
func collapseNoise(sorted []*models.Transaction) []*models.Transaction {
	if len(sorted) == 0 {
		return nil
	}
	unique := []*models.Transaction{sorted[0]}
	for _, tx := range sorted[1:] {
		last := unique[len(unique)-1]
		if daysBetween(last.Date, tx.Date) >= noiseWindowDays {
			unique = append(unique, tx)
		}
	}
	return unique
}

// isNewMonthlySubscription is the two-point rule: one month apart, same amount, same day.
func isNewMonthlySubscription(first, second *models.Transaction) bool {
	interval := daysBetween(first.Date, second.Date)
	if interval < twoPointMinDays || interval > twoPointMaxDays {
		return false
	}
	amountDiff := first.Amount.Abs().Sub(second.Amount.Abs()).Abs().InexactFloat64()
	if amountDiff >= twoPointAmountEpsilon {
		return false
	}
	dayDrift := math.Abs(float64(first.Date.Day() - second.Date.Day()))
	return dayDrift <= twoPointMaxDayDrift
}

func classifyIntervals(meanDays, stddevDays float64, class categoryClass) (models.Frequency, float64, bool) {
	for _, rule := range frequencyRules {
		if math.Abs(meanDays-rule.target) > rule.tolerance {
			continue
		}
		if rule.maxStddev > 0 && stddevDays >= rule.maxStddev {
			continue
		}
		return rule.frequency, rule.confidence, true
	}
	// Utilities bill on irregular cycles, so the stddev requirement is waived.
	if class == classUtility && meanDays >= utilityMinMeanDays && meanDays <= utilityMaxMeanDays {
		return models.FrequencyMonthly, utilityConfidence, true
	}
	return "", 0, false
}

func absAmounts(txs []*models.Transaction) []float64 {
	amounts := make([]float64, len(txs))
	for i, tx := range txs {
		amounts[i] = tx.Amount.Abs().InexactFloat64()
	}
	return amounts
}

func daysOfMonth(txs []*models.Transaction) []float64 {
	days := make([]float64, len(txs))
	for i, tx := range txs {
		days[i] = float64(tx.Date.Day())
	}
	return days
}
