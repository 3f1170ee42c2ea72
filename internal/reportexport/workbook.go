// Package reportexport renders profitability reports as XLSX workbooks.
package reportexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"resaletrack/internal/domain"
)

// Sheet names, in workbook order.
const (
	SheetSummary    = "Summary"
	SheetCategories = "Categories"
	SheetSources    = "Sources"
	SheetTopItems   = "Top Items"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var groupColumns = []interface{}{
	"Sold", "Unsold", "Total", "Sold Rate %", "Total Profit", "Avg Profit",
	"Avg Days to Sell", "Avg Days Listed (Unsold)",
}

var topColumns = []interface{}{
	"Rank", "SKU", "Item", "Category", "Platform", "Profit", "Days to Sell", "Date Sold", "Thumbnail",
}

// Filename returns the download name for a report generated on day.
func Filename(key domain.RangeKey, day time.Time) string {
	return fmt.Sprintf("profitability_%s_%s.xlsx", key, day.Format(domain.DateLayout))
}

// WriteWorkbook writes r as a four-sheet workbook to w.
func WriteWorkbook(w io.Writer, r *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("reportexport: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetSources, SheetTopItems} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("reportexport: new sheet %q: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("reportexport: header style: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summaryRows(r)},
		{SheetCategories, groupRows("Category", r.Categories, false)},
		{SheetSources, groupRows("Source", r.Sources, true)},
		{SheetTopItems, topRows(r.TopItems)},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows, header); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("reportexport: write: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("reportexport: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("reportexport: %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("reportexport: %s header: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return fmt.Errorf("reportexport: %s width: %w", sheet, err)
	}
	return nil
}

func summaryRows(r *domain.Report) [][]interface{} {
	k := r.KPIs
	return [][]interface{}{
		{"Metric", "Value"},
		{"Range", string(r.Range.Key)},
		{"Start Date", r.Range.StartDate},
		{"End Date", r.Range.EndDate},
		{"Total Items", k.TotalItems},
		{"Sold Items", k.SoldItems},
		{"Sold Rate %", k.SoldRatePct},
		{"Total Profit", k.TotalProfit},
		{"Avg Profit per Sold Item", k.AvgProfitPerSold},
		{"Avg Days to Sell", k.AvgDaysToSell},
	}
}

func groupRows(keyTitle string, groups []domain.GroupRow, withCOG bool) [][]interface{} {
	head := append([]interface{}{keyTitle}, groupColumns...)
	if withCOG {
		head = append(head, "Avg Unsold COG")
	}
	rows := [][]interface{}{head}
	for i := range groups {
		g := &groups[i]
		row := []interface{}{
			g.Key, g.SoldCount, g.UnsoldCount, g.TotalCount, g.SoldRatePct,
			g.TotalProfit, g.AvgProfit, optional(g.AvgDaysToSell), optional(g.AvgDaysListedUnsold),
		}
		if withCOG {
			row = append(row, optional(g.AvgUnsoldCOG))
		}
		rows = append(rows, row)
	}
	return rows
}

func topRows(items []domain.TopItem) [][]interface{} {
	rows := [][]interface{}{topColumns}
	for i := range items {
		it := &items[i]
		var days interface{}
		if it.DaysToSell != nil {
			days = *it.DaysToSell
		}
		rows = append(rows, []interface{}{
			it.Rank, it.SKU, it.ItemName, it.Category, it.Platform,
			it.Profit, days, it.DateSold, it.Thumbnail,
		})
	}
	return rows
}

// optional unwraps a nullable average so absent values become empty cells.
func optional(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
