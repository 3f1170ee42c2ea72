package reporting_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resaletrack/internal/domain"
	"resaletrack/internal/reporting"
)

// memReader serves items from memory using the same filter semantics as the
// SQL repository.
type memReader struct {
	items  []domain.Item
	images map[int64][]domain.ItemImage
	fail   string
}

func (m *memReader) CountAll(_ context.Context) (int, error) {
	if m.fail == "CountAll" {
		return 0, errors.New("connection refused")
	}
	return len(m.items), nil
}

func (m *memReader) CountSold(_ context.Context, rng domain.DateRange) (int, error) {
	if m.fail == "CountSold" {
		return 0, errors.New("connection refused")
	}
	n := 0
	filter := domain.SoldInRange(rng)
	for i := range m.items {
		if filter.Matches(&m.items[i]) {
			n++
		}
	}
	return n, nil
}

func (m *memReader) QueryItems(_ context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	if m.fail == "QueryItems" {
		return nil, errors.New("connection refused")
	}
	var out []domain.Item
	for i := range m.items {
		if filter.Matches(&m.items[i]) {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memReader) FirstImageFor(_ context.Context, sku int64) (*domain.ItemImage, error) {
	if m.fail == "FirstImageFor" {
		return nil, errors.New("connection refused")
	}
	imgs := m.images[sku]
	if len(imgs) == 0 {
		return nil, domain.ErrNotFound
	}
	first := imgs[0]
	for _, img := range imgs[1:] {
		if img.ID < first.ID {
			first = img
		}
	}
	return &first, nil
}

type prefixLinker struct {
	err error
}

func (l prefixLinker) Link(_ context.Context, img *domain.ItemImage) (string, error) {
	if l.err != nil {
		return "", l.err
	}
	return "/uploads/items/" + img.Filename, nil
}

func money(v float64) *float64 { return &v }

func date(s string) *time.Time {
	t := day(s)
	return &t
}

func str(s string) *string { return &s }

func soldItem(sku int64, profit float64, soldOn string) domain.Item {
	return domain.Item{
		SKU:             sku,
		ItemName:        fmt.Sprintf("item %d", sku),
		BuyerPaidAmount: money(profit),
		Sold:            true,
		DateSold:        date(soldOn),
	}
}

var today = day("2024-03-15")

func newEngine() *reporting.Engine {
	return reporting.NewEngine(prefixLinker{}, reporting.Options{Placeholder: "placeholder.png", DefaultTopN: 10})
}

func TestEngine_WindowExcludesOutOfRangeSales(t *testing.T) {
	a := domain.Item{
		SKU: 1, ItemName: "A", Sold: true, DateSold: date("2024-02-10"),
		BuyerPaidAmount: money(50), COG: money(20), Shipping: money(5),
	}
	b := domain.Item{
		SKU: 2, ItemName: "B", Sold: true, DateSold: date("2023-06-01"),
		BuyerPaidAmount: money(100),
	}
	reader := &memReader{items: []domain.Item{a, b}}

	report, err := newEngine().Generate(context.Background(), reader, domain.ReportRequest{
		RangeKey: "custom", Start: "2024-02-01", End: "2024-02-29",
	}, today)
	require.NoError(t, err)

	assert.Equal(t, 25.0, report.KPIs.TotalProfit)
	assert.Equal(t, 1, report.KPIs.SoldItems)
	assert.Equal(t, 2, report.KPIs.TotalItems)
	assert.Equal(t, 50.0, report.KPIs.SoldRatePct)
	assert.Equal(t, 25.0, report.KPIs.AvgProfitPerSold)
	require.Len(t, report.TopItems, 1)
	assert.Equal(t, int64(1), report.TopItems[0].SKU)
}

func TestEngine_KPIs(t *testing.T) {
	items := []domain.Item{
		{SKU: 1, Sold: true, DateListed: date("2024-01-01"), DateSold: date("2024-01-11"), BuyerPaidAmount: money(30), COG: money(10)},
		{SKU: 2, Sold: true, DateSold: date("2024-01-20"), BuyerPaidAmount: money(15), EbayFee: money(5)},
		{SKU: 3, Sold: true, DateListed: date("2024-01-05"), DateSold: date("2024-01-25"), BuyerPaidAmount: money(12.5)},
		{SKU: 4, Sold: false, DateListed: date("2024-01-05"), COG: money(40)},
		{SKU: 5, Sold: true}, // sold without a date
	}
	reader := &memReader{items: items}

	report, err := newEngine().Generate(context.Background(), reader, domain.ReportRequest{RangeKey: "this_year"}, today)
	require.NoError(t, err)
	k := report.KPIs
	assert.Equal(t, 5, k.TotalItems)
	assert.Equal(t, 3, k.SoldItems)
	assert.Equal(t, 60.0, k.SoldRatePct)
	assert.Equal(t, 42.5, k.TotalProfit)
	assert.InDelta(t, 14.1666, k.AvgProfitPerSold, 0.001)
	assert.Equal(t, 15.0, k.AvgDaysToSell)

	report, err = newEngine().Generate(context.Background(), reader, domain.ReportRequest{RangeKey: "all"}, today)
	require.NoError(t, err)
	assert.Equal(t, 4, report.KPIs.SoldItems, "undated sale is included for the unbounded range")
	assert.Equal(t, 42.5, report.KPIs.TotalProfit)
}

func TestEngine_EmptyInventory(t *testing.T) {
	report, err := newEngine().Generate(context.Background(), &memReader{}, domain.ReportRequest{}, today)
	require.NoError(t, err)

	assert.Equal(t, domain.KPIs{}, report.KPIs)
	assert.Empty(t, report.Categories)
	assert.Empty(t, report.Sources)
	assert.Empty(t, report.TopItems)
	assert.Equal(t, domain.RangeAll, report.Range.Key)
}

func TestEngine_TopNClamps(t *testing.T) {
	var items []domain.Item
	for i := 1; i <= 12; i++ {
		items = append(items, soldItem(int64(i), float64(i*10), "2024-03-01"))
	}
	reader := &memReader{items: items}
	engine := newEngine()

	report, err := engine.Generate(context.Background(), reader, domain.ReportRequest{TopN: 2}, today)
	require.NoError(t, err)
	assert.Len(t, report.TopItems, 5)

	report, err = engine.Generate(context.Background(), reader, domain.ReportRequest{TopN: 50}, today)
	require.NoError(t, err)
	require.Len(t, report.TopItems, 10)
	assert.Equal(t, int64(12), report.TopItems[0].SKU)
	assert.Equal(t, 1, report.TopItems[0].Rank)
	assert.Equal(t, int64(3), report.TopItems[9].SKU)

	report, err = engine.Generate(context.Background(), reader, domain.ReportRequest{TopN: 7}, today)
	require.NoError(t, err)
	assert.Len(t, report.TopItems, 7)
}

func TestEngine_TopItemFields(t *testing.T) {
	it := domain.Item{
		SKU: 7, ItemName: "Camera", Category: str("Electronics"), Platform: str("eBay"),
		Sold: true, DateListed: date("2024-03-01"), DateSold: date("2024-03-04"),
		BuyerPaidAmount: money(80), COG: money(30),
	}
	noPhoto := soldItem(8, 10, "2024-03-05")
	reader := &memReader{
		items: []domain.Item{it, noPhoto},
		images: map[int64][]domain.ItemImage{
			7: {{ID: 31, ItemSKU: 7, Filename: "SKU7_b.jpg"}, {ID: 12, ItemSKU: 7, Filename: "SKU7_a.jpg"}},
		},
	}

	report, err := newEngine().Generate(context.Background(), reader, domain.ReportRequest{RangeKey: "this_month"}, today)
	require.NoError(t, err)
	require.Len(t, report.TopItems, 2)

	first := report.TopItems[0]
	assert.Equal(t, "Camera", first.ItemName)
	assert.Equal(t, "Electronics", first.Category)
	assert.Equal(t, "eBay", first.Platform)
	assert.Equal(t, 50.0, first.Profit)
	require.NotNil(t, first.DaysToSell)
	assert.Equal(t, 3, *first.DaysToSell)
	assert.Equal(t, "2024-03-04", first.DateSold)
	assert.Equal(t, "/uploads/items/SKU7_a.jpg", first.Thumbnail)

	second := report.TopItems[1]
	assert.Equal(t, domain.UncategorizedKey, second.Category)
	assert.Nil(t, second.DaysToSell)
	assert.Equal(t, "placeholder.png", second.Thumbnail)
}

func TestEngine_LinkFailureUsesPlaceholder(t *testing.T) {
	reader := &memReader{
		items:  []domain.Item{soldItem(1, 10, "2024-03-01")},
		images: map[int64][]domain.ItemImage{1: {{ID: 1, ItemSKU: 1, Filename: "a.jpg"}}},
	}
	engine := reporting.NewEngine(prefixLinker{err: errors.New("presign failed")}, reporting.Options{})

	report, err := engine.Generate(context.Background(), reader, domain.ReportRequest{}, today)
	require.NoError(t, err)
	assert.Equal(t, reporting.DefaultPlaceholder, report.TopItems[0].Thumbnail)
}

func TestEngine_RepositoryFailureFailsReport(t *testing.T) {
	for _, method := range []string{"CountAll", "CountSold", "QueryItems", "FirstImageFor"} {
		t.Run(method, func(t *testing.T) {
			reader := &memReader{items: []domain.Item{soldItem(1, 10, "2024-03-01")}, fail: method}
			report, err := newEngine().Generate(context.Background(), reader, domain.ReportRequest{}, today)
			assert.Error(t, err)
			assert.Nil(t, report)
		})
	}
}

func TestEngine_Idempotent(t *testing.T) {
	reader := &memReader{items: []domain.Item{
		soldItem(1, 10, "2024-03-01"),
		soldItem(2, 10, "2024-03-02"),
		{SKU: 3, Category: str("Toys"), SourceLocation: str("Estate sale"), COG: money(4), DateListed: date("2024-01-01")},
		{SKU: 4, Category: str("Books"), SourceLocation: str("Thrift"), COG: money(1)},
	}}
	engine := newEngine()

	first, err := engine.Generate(context.Background(), reader, domain.ReportRequest{RangeKey: "all"}, today)
	require.NoError(t, err)
	second, err := engine.Generate(context.Background(), reader, domain.ReportRequest{RangeKey: "all"}, today)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEngine_NonFiniteAmountFailsReport(t *testing.T) {
	tests := []struct {
		name string
		item domain.Item
	}{
		{"nan fee on sold item", domain.Item{SKU: 1, Sold: true, DateSold: date("2024-03-01"), BuyerPaidAmount: money(20), EbayFee: money(math.NaN())}},
		{"infinite buyer amount", domain.Item{SKU: 2, Sold: true, DateSold: date("2024-03-02"), BuyerPaidAmount: money(math.Inf(1))}},
		{"negative infinite cog on unsold item", domain.Item{SKU: 3, COG: money(math.Inf(-1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &memReader{items: []domain.Item{soldItem(9, 10, "2024-03-01"), tt.item}}

			var report *domain.Report
			var err error
			require.NotPanics(t, func() {
				report, err = newEngine().Generate(context.Background(), reader, domain.ReportRequest{}, today)
			})
			assert.Nil(t, report)
			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		})
	}
}

func TestBuildKPIs_SkipsNonFiniteProfit(t *testing.T) {
	items := []domain.Item{
		soldItem(1, 10, "2024-03-01"),
		{SKU: 2, Sold: true, BuyerPaidAmount: money(math.NaN())},
	}
	var kpis domain.KPIs
	require.NotPanics(t, func() { kpis = reporting.BuildKPIs(2, 2, items) })
	assert.Equal(t, 10.0, kpis.TotalProfit)
}
