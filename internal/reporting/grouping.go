package reporting

import (
	"sort"
	"strings"
	"time"

	"resaletrack/internal/domain"
)

// Grouping describes one breakdown dimension.
type Grouping struct {
	Dimension domain.GroupDimension
	// Sentinel replaces an absent or blank key.
	Sentinel string
	KeyOf    func(*domain.Item) *string
	// TrackUnsoldCOG adds the average COG of unsold items to each row.
	TrackUnsoldCOG bool
	// Less orders rows; the first row is the best performer.
	Less func(a, b *domain.GroupRow) bool
}

// CategoryGrouping ranks categories by sold count, then profit.
var CategoryGrouping = Grouping{
	Dimension: domain.DimensionCategory,
	Sentinel:  domain.UncategorizedKey,
	KeyOf:     func(it *domain.Item) *string { return it.Category },
	Less:      bySoldCountThenProfit,
}

// SourceGrouping ranks source locations by profit, then sold count.
var SourceGrouping = Grouping{
	Dimension:      domain.DimensionSourceLocation,
	Sentinel:       domain.UnknownSourceKey,
	KeyOf:          func(it *domain.Item) *string { return it.SourceLocation },
	TrackUnsoldCOG: true,
	Less:           byProfitThenSoldCount,
}

// Key returns the group key of an item.
func (g Grouping) Key(it *domain.Item) string {
	v := g.KeyOf(it)
	if v == nil {
		return g.Sentinel
	}
	k := strings.TrimSpace(*v)
	if k == "" {
		return g.Sentinel
	}
	return k
}

type inventoryPartial struct {
	total       int
	unsold      int
	listedDays  daySum
	unsoldCosts moneySum
}

type soldPartial struct {
	sold   int
	profit moneySum
	days   daySum
}

// Build merges an unfiltered inventory pass with a sold-in-range pass. Every
// key seen in either pass gets a row; the side it is missing from
// contributes zeros.
func (g Grouping) Build(inventory, soldInRange []domain.Item, today time.Time) []domain.GroupRow {
	inv := make(map[string]*inventoryPartial)
	for i := range inventory {
		it := &inventory[i]
		key := g.Key(it)
		p, ok := inv[key]
		if !ok {
			p = &inventoryPartial{}
			inv[key] = p
		}
		p.total++
		if it.Sold {
			continue
		}
		p.unsold++
		if d, ok := it.DaysListedUnsold(today); ok {
			p.listedDays.add(d)
		}
		if g.TrackUnsoldCOG && it.COG != nil {
			p.unsoldCosts.add(*it.COG)
		}
	}

	sold := make(map[string]*soldPartial)
	for i := range soldInRange {
		it := &soldInRange[i]
		key := g.Key(it)
		p, ok := sold[key]
		if !ok {
			p = &soldPartial{}
			sold[key] = p
		}
		p.sold++
		p.profit.add(it.Profit())
		if d, ok := it.DaysToSell(); ok {
			p.days.add(d)
		}
	}

	keys := make(map[string]struct{}, len(inv)+len(sold))
	for k := range inv {
		keys[k] = struct{}{}
	}
	for k := range sold {
		keys[k] = struct{}{}
	}

	rows := make([]domain.GroupRow, 0, len(keys))
	for k := range keys {
		rows = append(rows, g.mergeRow(k, inv[k], sold[k]))
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if g.Less(a, b) {
			return true
		}
		if g.Less(b, a) {
			return false
		}
		return a.Key < b.Key
	})
	return rows
}

func (g Grouping) mergeRow(key string, inv *inventoryPartial, sold *soldPartial) domain.GroupRow {
	row := domain.GroupRow{Key: key}
	if inv != nil {
		row.TotalCount = inv.total
		row.UnsoldCount = inv.unsold
		row.AvgDaysListedUnsold = inv.listedDays.optionalMean()
		if g.TrackUnsoldCOG {
			row.AvgUnsoldCOG = inv.unsoldCosts.optionalMean()
		}
	}
	if sold != nil {
		row.SoldCount = sold.sold
		row.TotalProfit = sold.profit.sum()
		row.AvgProfit = sold.profit.mean()
		row.AvgDaysToSell = sold.days.optionalMean()
	}
	row.SoldRatePct = percent(row.SoldCount, row.TotalCount)
	return row
}

func bySoldCountThenProfit(a, b *domain.GroupRow) bool {
	if a.SoldCount != b.SoldCount {
		return a.SoldCount > b.SoldCount
	}
	return a.TotalProfit > b.TotalProfit
}

func byProfitThenSoldCount(a, b *domain.GroupRow) bool {
	if a.TotalProfit != b.TotalProfit {
		return a.TotalProfit > b.TotalProfit
	}
	return a.SoldCount > b.SoldCount
}
