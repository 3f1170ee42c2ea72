package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"resaletrack/internal/domain"
	"resaletrack/internal/reportexport"
)

const (
	formatJSON  = "json"
	formatTable = "table"
	formatXLSX  = "xlsx"
)

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatTable, formatXLSX:
		return nil
	default:
		return fmt.Errorf("unknown format %q: want json, table or xlsx", format)
	}
}

func render(w io.Writer, format string, r *domain.Report) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatXLSX:
		return reportexport.WriteWorkbook(w, r)
	default:
		return renderTable(w, r)
	}
}

func renderTable(out io.Writer, r *domain.Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Range:\t%s\t%s\t%s\n", r.Range.Key, dash(r.Range.StartDate), dash(r.Range.EndDate))
	k := r.KPIs
	fmt.Fprintf(w, "Items:\t%d total\t%d sold\t%.1f%%\n", k.TotalItems, k.SoldItems, k.SoldRatePct)
	fmt.Fprintf(w, "Profit:\t%.2f total\t%.2f avg\t%.1f days to sell\n", k.TotalProfit, k.AvgProfitPerSold, k.AvgDaysToSell)

	groupTable(w, "CATEGORY", r.Categories, false)
	groupTable(w, "SOURCE", r.Sources, true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "RANK\tSKU\tITEM\tCATEGORY\tPROFIT\tDAYS\tSOLD")
	for _, it := range r.TopItems {
		days := "-"
		if it.DaysToSell != nil {
			days = strconv.Itoa(*it.DaysToSell)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%.2f\t%s\t%s\n",
			it.Rank, it.SKU, it.ItemName, it.Category, it.Profit, days, dash(it.DateSold))
	}
	return w.Flush()
}

func groupTable(w io.Writer, title string, rows []domain.GroupRow, unsoldCOG bool) {
	fmt.Fprintln(w)
	header := title + "\tSOLD\tUNSOLD\tRATE %\tPROFIT\tAVG PROFIT\tAVG DAYS\tAVG LISTED"
	if unsoldCOG {
		header += "\tAVG UNSOLD COG"
	}
	fmt.Fprintln(w, header)
	for _, g := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.2f\t%.2f\t%s\t%s",
			g.Key, g.SoldCount, g.UnsoldCount, g.SoldRatePct, g.TotalProfit, g.AvgProfit,
			optional(g.AvgDaysToSell), optional(g.AvgDaysListedUnsold))
		if unsoldCOG {
			fmt.Fprintf(w, "\t%s", money(g.AvgUnsoldCOG))
		}
		fmt.Fprintln(w)
	}
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
