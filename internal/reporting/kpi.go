package reporting

import "resaletrack/internal/domain"

// BuildKPIs computes the headline figures. totalItems and soldItems come from
// the repository counts; soldInRange must be the matching sold-in-range rows.
func BuildKPIs(totalItems, soldItems int, soldInRange []domain.Item) domain.KPIs {
	var profit moneySum
	var days daySum
	for i := range soldInRange {
		it := &soldInRange[i]
		profit.add(it.Profit())
		if d, ok := it.DaysToSell(); ok {
			days.add(d)
		}
	}

	kpis := domain.KPIs{
		TotalItems:    totalItems,
		SoldItems:     soldItems,
		SoldRatePct:   percent(soldItems, totalItems),
		TotalProfit:   profit.sum(),
		AvgDaysToSell: days.mean(),
	}
	if soldItems > 0 {
		kpis.AvgProfitPerSold = profit.total.Div(decimalInt(soldItems)).InexactFloat64()
	}
	return kpis
}
