package detector

import (
	"recurring-detector/internal/models"
)

const (
	// Days after an anchor day merged into its cluster to absorb weekend and processing drift.
	clusterDriftDays   = 2
	minClusterSize     = 3
	clusterNextDateGap = 3
)

// ClusterByDayOfMonth splits one merchant's history into day-of-month clusters so that
// several subscriptions billed under the same merchant name can be analyzed separately.
// Only clusters with at least three transactions are returned, in anchor-day order.
func ClusterByDayOfMonth(txs []*models.Transaction) [][]*models.Transaction {
	var byDay [32][]*models.Transaction
	for _, tx := range txs {
		day := tx.Date.Day()
		byDay[day] = append(byDay[day], tx)
	}

	var (
		consumed [32]bool
		clusters [][]*models.Transaction
	)
	for day := 1; day <= 31; day++ {
		if consumed[day] || len(byDay[day]) == 0 {
			continue
		}
		consumed[day] = true
		cluster := append([]*models.Transaction(nil), byDay[day]...)

		for next := day + 1; next <= day+clusterDriftDays && next <= 31; next++ {
			if consumed[next] || len(byDay[next]) == 0 {
				continue
			}
			consumed[next] = true
			cluster = append(cluster, byDay[next]...)
		}

		if len(cluster) >= minClusterSize {
			sortByDate(cluster)
			clusters = append(clusters, cluster)
		}
	}
	return clusters
}

// duplicatesAccepted reports whether a clustered candidate repeats one already accepted
// for the same merchant: same frequency and a next date within three days.
func duplicatesAccepted(candidate *models.RecurringTransaction, accepted []Candidate) bool {
	for _, other := range accepted {
		rec := other.Record
		if rec.MerchantName != candidate.MerchantName || rec.Frequency != candidate.Frequency {
			continue
		}
		if abs(daysBetween(rec.NextDate, candidate.NextDate)) <= clusterNextDateGap {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
