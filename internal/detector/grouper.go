package detector

import (
	"sort"

	"recurring-detector/internal/models"
)

// MerchantGroups maps a merchant key to its date-ascending transactions.
// It is built once by GroupByMerchant and only read afterwards.
type MerchantGroups struct {
	groups map[string][]*models.Transaction
	keys   []string
}

// GroupByMerchant partitions transactions by MerchantKey, dropping empty keys.
func GroupByMerchant(txs []*models.Transaction) MerchantGroups {
	groups := make(map[string][]*models.Transaction)
	for _, tx := range txs {
		key := tx.MerchantKey()
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	keys := make([]string, 0, len(groups))
	for key, group := range groups {
		sortByDate(group)
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return MerchantGroups{groups: groups, keys: keys}
}

// Keys returns merchant keys in sorted order.
func (g MerchantGroups) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Transactions returns a copy of the group's transactions.
func (g MerchantGroups) Transactions(key string) []*models.Transaction {
	return append([]*models.Transaction(nil), g.groups[key]...)
}

func (g MerchantGroups) Len() int {
	return len(g.keys)
}

// sortByDate orders in place by date, then by ID for stable output.
func sortByDate(txs []*models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		di, dj := dateOnly(txs[i].Date), dateOnly(txs[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return txs[i].ID.String() < txs[j].ID.String()
	})
}
