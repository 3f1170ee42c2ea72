package domain

import "time"

// RangeKey selects the reporting window.
type RangeKey string

const (
	RangeAll       RangeKey = "all"
	Range30Days    RangeKey = "30d"
	Range90Days    RangeKey = "90d"
	RangeThisMonth RangeKey = "this_month"
	RangeLastMonth RangeKey = "last_month"
	RangeThisYear  RangeKey = "this_year"
	RangeLastYear  RangeKey = "last_year"
	RangeCustom    RangeKey = "custom"
)

// DateRange is an inclusive interval of calendar dates. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Bounded reports whether either side of the range is set.
func (r DateRange) Bounded() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether the calendar date of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := CalendarDate(t)
	if r.Start != nil && d.Before(CalendarDate(*r.Start)) {
		return false
	}
	if r.End != nil && d.After(CalendarDate(*r.End)) {
		return false
	}
	return true
}

// ResolvedRange is a range key together with its concrete bounds.
type ResolvedRange struct {
	Key RangeKey
	DateRange
}

// ItemFilter is the one filter shape every item query takes.
type ItemFilter struct {
	Sold  *bool
	Range DateRange // applied to date_sold
}

// SoldInRange returns the filter for sold items whose sale date falls in r.
// An unbounded r matches every sold item, including those without a sale date.
func SoldInRange(r DateRange) ItemFilter {
	sold := true
	return ItemFilter{Sold: &sold, Range: r}
}

// Matches applies the filter to a single item.
func (f ItemFilter) Matches(it *Item) bool {
	if f.Sold != nil && it.Sold != *f.Sold {
		return false
	}
	if !f.Range.Bounded() {
		return true
	}
	if it.DateSold == nil {
		return false
	}
	return f.Range.Contains(*it.DateSold)
}

// ReportRequest carries the raw, unvalidated report parameters.
// TopN of zero selects the configured default.
type ReportRequest struct {
	RangeKey string
	Start    string
	End      string
	TopN     int
}

// Report is the profitability report for one window.
type Report struct {
	Range      RangeEcho  `json:"range"`
	KPIs       KPIs       `json:"kpis"`
	Categories []GroupRow `json:"categories"`
	Sources    []GroupRow `json:"sources"`
	TopItems   []TopItem  `json:"top_items"`
}

// RangeEcho reports the resolved window back to the caller.
type RangeEcho struct {
	Key       RangeKey `json:"key"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
}

// KPIs holds the headline figures. TotalItems is the whole inventory, not windowed.
type KPIs struct {
	TotalItems       int     `json:"total_items"`
	SoldItems        int     `json:"sold_items"`
	SoldRatePct      float64 `json:"sold_rate_pct"`
	TotalProfit      float64 `json:"total_profit"`
	AvgProfitPerSold float64 `json:"avg_profit_per_sold"`
	AvgDaysToSell    float64 `json:"avg_days_to_sell"`
}

// GroupDimension names the field a breakdown is grouped by.
type GroupDimension string

const (
	DimensionCategory       GroupDimension = "category"
	DimensionSourceLocation GroupDimension = "source_location"
)

// GroupRow is one row of a category or source-location breakdown.
type GroupRow struct {
	Key                 string   `json:"key"`
	SoldCount           int      `json:"sold_count"`
	UnsoldCount         int      `json:"unsold_count"`
	TotalCount          int      `json:"total_count"`
	SoldRatePct         float64  `json:"sold_rate_pct"`
	TotalProfit         float64  `json:"total_profit"`
	AvgProfit           float64  `json:"avg_profit"`
	AvgDaysToSell       *float64 `json:"avg_days_to_sell"`
	AvgDaysListedUnsold *float64 `json:"avg_days_listed_unsold"`
	AvgUnsoldCOG        *float64 `json:"avg_unsold_cog,omitempty"`
}

// TopItem is one entry of the top performers list.
type TopItem struct {
	Rank       int     `json:"rank"`
	SKU        int64   `json:"sku"`
	ItemName   string  `json:"item_name"`
	Category   string  `json:"category"`
	Platform   string  `json:"platform,omitempty"`
	Profit     float64 `json:"profit"`
	DaysToSell *int    `json:"days_to_sell"`
	DateSold   string  `json:"date_sold,omitempty"`
	Thumbnail  string  `json:"thumbnail"`
}
