package reporting

import (
	"math"

	"github.com/shopspring/decimal"
)

// moneySum accumulates money values exactly and counts them.
type moneySum struct {
	total decimal.Decimal
	n     int
}

// add ignores NaN and infinite values, which decimal cannot represent.
func (s *moneySum) add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	s.total = s.total.Add(decimal.NewFromFloat(v))
	s.n++
}

func (s *moneySum) sum() float64 {
	return s.total.InexactFloat64()
}

// mean is zero for an empty sum.
func (s *moneySum) mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.total.Div(decimalInt(s.n)).InexactFloat64()
}

// optionalMean is nil for an empty sum.
func (s *moneySum) optionalMean() *float64 {
	if s.n == 0 {
		return nil
	}
	m := s.mean()
	return &m
}

// daySum accumulates day counts.
type daySum struct {
	total int
	n     int
}

func (s *daySum) add(days int) {
	s.total += days
	s.n++
}

func (s *daySum) mean() float64 {
	if s.n == 0 {
		return 0
	}
	return float64(s.total) / float64(s.n)
}

func (s *daySum) optionalMean() *float64 {
	if s.n == 0 {
		return nil
	}
	m := s.mean()
	return &m
}

// percent returns part/whole*100, or 0 when whole is zero.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func decimalInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
