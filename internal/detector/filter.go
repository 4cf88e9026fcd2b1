package detector

import (
	"recurring-detector/internal/models"

	"github.com/google/uuid"
)

// FilterTransactions keeps outflows on owned accounts whose category is not excluded.
// Transactions without a category are kept.
func FilterTransactions(txs []*models.Transaction, ownedAccounts, excludedCategories []uuid.UUID) []*models.Transaction {
	owned := toSet(ownedAccounts)
	excluded := toSet(excludedCategories)

	filtered := make([]*models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx == nil || tx.Pending {
			continue
		}
		if _, ok := owned[tx.AccountID]; !ok {
			continue
		}
		if tx.CategoryID != nil {
			if _, ok := excluded[*tx.CategoryID]; ok {
				continue
			}
		}
		if !tx.IsOutflow() {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
