package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Sentinel group keys used when a classification field is absent.
const (
	UncategorizedKey = "Uncategorized"
	UnknownSourceKey = "Unknown"
)

// Item is a single resale item. SKU is the primary key.
type Item struct {
	SKU             int64      `db:"sku" json:"sku"`
	ItemName        string     `db:"item_name" json:"item_name"`
	Category        *string    `db:"category" json:"category"`
	SubCategory     *string    `db:"sub_category" json:"sub_category"`
	Platform        *string    `db:"platform" json:"platform"`
	SourceLocation  *string    `db:"source_location" json:"source_location"`
	Notes           *string    `db:"notes" json:"notes"`
	COG             *float64   `db:"cog" json:"cog"`
	SalePrice       *float64   `db:"sale_price" json:"sale_price"`
	AdFee           *float64   `db:"ad_fee" json:"ad_fee"`
	EbayFee         *float64   `db:"ebay_fee" json:"ebay_fee"`
	Shipping        *float64   `db:"shipping" json:"shipping"`
	BuyerPaidAmount *float64   `db:"buyer_paid_amount" json:"buyer_paid_amount"`
	DateListed      *time.Time `db:"date_listed" json:"date_listed"`
	DateSold        *time.Time `db:"date_sold" json:"date_sold"`
	Sold            bool       `db:"sold" json:"sold"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// ItemImage is a photo attached to an item. Lower IDs were uploaded first.
type ItemImage struct {
	ID         int64     `db:"id" json:"id"`
	ItemSKU    int64     `db:"item_sku" json:"item_sku"`
	Filename   string    `db:"filename" json:"filename"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// Amount returns the value of an optional money field, treating nil as zero.
func Amount(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ValidateAmounts rejects NaN and infinite money fields.
func (i *Item) ValidateAmounts() error {
	fields := []struct {
		name string
		v    *float64
	}{
		{"cog", i.COG},
		{"sale_price", i.SalePrice},
		{"ad_fee", i.AdFee},
		{"ebay_fee", i.EbayFee},
		{"shipping", i.Shipping},
		{"buyer_paid_amount", i.BuyerPaidAmount},
	}
	for _, f := range fields {
		if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
			return fmt.Errorf("%w: sku %d %s=%v", ErrInvalidAmount, i.SKU, f.name, *f.v)
		}
	}
	return nil
}

// NetCost is COG + ad fee + marketplace fee + shipping.
func (i *Item) NetCost() float64 {
	return Amount(i.COG) + Amount(i.AdFee) + Amount(i.EbayFee) + Amount(i.Shipping)
}

// Profit is the buyer paid amount minus net cost. A blank buyer amount
// yields a negative profit equal to the net cost.
func (i *Item) Profit() float64 {
	return Amount(i.BuyerPaidAmount) - i.NetCost()
}

// DaysToSell returns the number of days between listing and sale.
// ok is false unless both dates are set.
func (i *Item) DaysToSell() (days int, ok bool) {
	if i.DateListed == nil || i.DateSold == nil {
		return 0, false
	}
	return DaysBetween(*i.DateListed, *i.DateSold), true
}

// DaysListedUnsold returns how long an unsold item has been listed as of today.
func (i *Item) DaysListedUnsold(today time.Time) (days int, ok bool) {
	if i.Sold || i.DateListed == nil {
		return 0, false
	}
	return DaysBetween(*i.DateListed, today), true
}

// DaysBetween counts calendar days from one date to another, ignoring the
// time of day and location.
func DaysBetween(from, to time.Time) int {
	return int(CalendarDate(to).Sub(CalendarDate(from)).Hours() / 24)
}

// CalendarDate strips the clock from t, keeping its year, month and day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
