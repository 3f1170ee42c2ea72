// Package reporting builds profitability reports from item records.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"resaletrack/internal/domain"
	"resaletrack/internal/port"
)

// DefaultPlaceholder is the thumbnail used for items without photos.
const DefaultPlaceholder = "/static/img/no-image.png"

// Options tunes an Engine.
type Options struct {
	Placeholder string
	DefaultTopN int
	Logger      *zap.Logger
}

// Engine assembles reports. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	linker      port.ThumbnailLinker
	placeholder string
	defaultTopN int
	log         *zap.Logger
}

// NewEngine creates an Engine. A nil linker always yields the placeholder.
func NewEngine(linker port.ThumbnailLinker, opts Options) *Engine {
	e := &Engine{
		linker:      linker,
		placeholder: opts.Placeholder,
		defaultTopN: opts.DefaultTopN,
		log:         opts.Logger,
	}
	if e.placeholder == "" {
		e.placeholder = DefaultPlaceholder
	}
	if e.defaultTopN == 0 {
		e.defaultTopN = MaxTopN
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// Generate builds a report from reader. Any query failure fails the whole
// report; malformed request fields are defaulted instead.
func (e *Engine) Generate(ctx context.Context, reader port.ItemReader, req domain.ReportRequest, today time.Time) (*domain.Report, error) {
	rng := ResolveRange(req.RangeKey, req.Start, req.End, today)

	topN := req.TopN
	if topN == 0 {
		topN = e.defaultTopN
	}
	topN = ClampTopN(topN)

	total, err := reader.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporting.Generate count all: %w", err)
	}
	soldCount, err := reader.CountSold(ctx, rng.DateRange)
	if err != nil {
		return nil, fmt.Errorf("reporting.Generate count sold: %w", err)
	}
	inventory, err := reader.QueryItems(ctx, domain.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("reporting.Generate inventory: %w", err)
	}
	soldInRange, err := reader.QueryItems(ctx, domain.SoldInRange(rng.DateRange))
	if err != nil {
		return nil, fmt.Errorf("reporting.Generate sold items: %w", err)
	}
	if err := validateAmounts(inventory, soldInRange); err != nil {
		return nil, fmt.Errorf("reporting.Generate: %w", err)
	}

	top, err := e.topItems(ctx, reader, soldInRange, topN)
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		Range:      Echo(rng),
		KPIs:       BuildKPIs(total, soldCount, soldInRange),
		Categories: CategoryGrouping.Build(inventory, soldInRange, today),
		Sources:    SourceGrouping.Build(inventory, soldInRange, today),
		TopItems:   top,
	}, nil
}

func (e *Engine) topItems(ctx context.Context, reader port.ItemReader, soldInRange []domain.Item, n int) ([]domain.TopItem, error) {
	ranked := RankByProfit(soldInRange, n)
	out := make([]domain.TopItem, 0, len(ranked))
	for i := range ranked {
		it := &ranked[i]
		row := topItem(i+1, it)
		thumb, err := e.thumbnail(ctx, reader, it.SKU)
		if err != nil {
			return nil, err
		}
		row.Thumbnail = thumb
		out = append(out, row)
	}
	return out, nil
}

func (e *Engine) thumbnail(ctx context.Context, reader port.ItemReader, sku int64) (string, error) {
	img, err := reader.FirstImageFor(ctx, sku)
	if errors.Is(err, domain.ErrNotFound) {
		return e.placeholder, nil
	}
	if err != nil {
		return "", fmt.Errorf("reporting.Generate image for sku %d: %w", sku, err)
	}
	if e.linker == nil {
		return e.placeholder, nil
	}
	ref, err := e.linker.Link(ctx, img)
	if err != nil {
		e.log.Warn("thumbnail link failed, using placeholder",
			zap.Int64("sku", sku), zap.Int64("image_id", img.ID), zap.Error(err))
		return e.placeholder, nil
	}
	return ref, nil
}

func validateAmounts(sets ...[]domain.Item) error {
	for _, items := range sets {
		for i := range items {
			if err := items[i].ValidateAmounts(); err != nil {
				return err
			}
		}
	}
	return nil
}
