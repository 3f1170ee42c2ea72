package reporting

import (
	"strings"
	"time"

	"resaletrack/internal/domain"
)

// rangeAliases maps accepted spellings onto canonical range keys.
var rangeAliases = map[string]domain.RangeKey{
	"all":          domain.RangeAll,
	"30d":          domain.Range30Days,
	"last_30_days": domain.Range30Days,
	"90d":          domain.Range90Days,
	"last_90_days": domain.Range90Days,
	"this_month":   domain.RangeThisMonth,
	"last_month":   domain.RangeLastMonth,
	"this_year":    domain.RangeThisYear,
	"last_year":    domain.RangeLastYear,
	"custom":       domain.RangeCustom,
}

// unpaddedDateLayout accepts single-digit months and days, e.g. 2024-5-1.
const unpaddedDateLayout = "2006-1-2"

// ParseDate parses a YYYY-MM-DD string; month and day may omit the leading
// zero. Blank or malformed input yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{domain.DateLayout, unpaddedDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ResolveRange turns a range key into concrete inclusive bounds relative to
// today. Unknown keys resolve to the unbounded "all" range; custom bounds that
// fail to parse are left open. It never fails.
func ResolveRange(key, start, end string, today time.Time) domain.ResolvedRange {
	k, ok := rangeAliases[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		k = domain.RangeAll
	}

	today = domain.CalendarDate(today)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	year := today.Year()

	var from, to time.Time
	switch k {
	case domain.Range30Days:
		from, to = today.AddDate(0, 0, -30), today
	case domain.Range90Days:
		from, to = today.AddDate(0, 0, -90), today
	case domain.RangeThisMonth:
		from, to = firstOfMonth, today
	case domain.RangeLastMonth:
		from, to = firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1)
	case domain.RangeThisYear:
		from, to = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), today
	case domain.RangeLastYear:
		from = time.Date(year-1, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = time.Date(year-1, time.December, 31, 0, 0, 0, 0, time.UTC)
	case domain.RangeCustom:
		return resolveCustom(start, end)
	default:
		return domain.ResolvedRange{Key: domain.RangeAll}
	}

	return domain.ResolvedRange{
		Key:       k,
		DateRange: domain.DateRange{Start: &from, End: &to},
	}
}

func resolveCustom(start, end string) domain.ResolvedRange {
	from, to := ParseDate(start), ParseDate(end)
	if from != nil && to != nil && from.After(*to) {
		from, to = to, from
	}
	return domain.ResolvedRange{
		Key:       domain.RangeCustom,
		DateRange: domain.DateRange{Start: from, End: to},
	}
}

// Echo renders the resolved range for the report payload.
func Echo(r domain.ResolvedRange) domain.RangeEcho {
	echo := domain.RangeEcho{Key: r.Key}
	if r.Start != nil {
		echo.StartDate = r.Start.Format(domain.DateLayout)
	}
	if r.End != nil {
		echo.EndDate = r.End.Format(domain.DateLayout)
	}
	return echo
}
