package reporting

import (
	"sort"

	"resaletrack/internal/domain"
)

// Bounds of the top performers list.
const (
	MinTopN = 5
	MaxTopN = 10
)

// ClampTopN forces n into [MinTopN, MaxTopN].
func ClampTopN(n int) int {
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// RankByProfit returns up to n items ordered by profit, highest first. Items
// with equal profit keep their input order. The input is not modified.
func RankByProfit(items []domain.Item, n int) []domain.Item {
	ranked := make([]domain.Item, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profit() > ranked[j].Profit()
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// topItem shapes a ranked item for output. The thumbnail is filled in by the caller.
func topItem(rank int, it *domain.Item) domain.TopItem {
	out := domain.TopItem{
		Rank:     rank,
		SKU:      it.SKU,
		ItemName: it.ItemName,
		Category: CategoryGrouping.Key(it),
		Profit:   it.Profit(),
	}
	if it.Platform != nil {
		out.Platform = *it.Platform
	}
	if d, ok := it.DaysToSell(); ok {
		out.DaysToSell = &d
	}
	if it.DateSold != nil {
		out.DateSold = it.DateSold.Format(domain.DateLayout)
	}
	return out
}
