package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"resaletrack/internal/domain"
	"resaletrack/internal/port"
)

const itemColumns = `sku, item_name, category, sub_category, platform, source_location, notes,
	cog, sale_price, ad_fee, ebay_fee, shipping, buyer_paid_amount,
	date_listed, date_sold, sold, created_at, updated_at`

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type itemRepo struct {
	db *sqlx.DB
	itemReader
}

// NewItemRepo creates a new PostgreSQL-backed ItemRepository.
func NewItemRepo(db *sqlx.DB) port.ItemRepository {
	return &itemRepo{db: db, itemReader: itemReader{q: db}}
}

// ReadSnapshot runs fn inside a read-only repeatable-read transaction so every
// query fn issues sees the same committed state.
func (r *itemRepo) ReadSnapshot(ctx context.Context, fn func(port.ItemReader) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("itemRepo.ReadSnapshot begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only; rollback after commit is a no-op

	if err := fn(itemReader{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("itemRepo.ReadSnapshot commit: %w", err)
	}
	return nil
}

type itemReader struct {
	q queryer
}

func (r itemReader) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.q.GetContext(ctx, &n, "SELECT COUNT(*) FROM items"); err != nil {
		return 0, fmt.Errorf("itemRepo.CountAll: %w", err)
	}
	return n, nil
}

func (r itemReader) CountSold(ctx context.Context, rng domain.DateRange) (int, error) {
	where, args := buildItemWhere(domain.SoldInRange(rng))
	var n int
	if err := r.q.GetContext(ctx, &n, "SELECT COUNT(*) FROM items"+where, args...); err != nil {
		return 0, fmt.Errorf("itemRepo.CountSold: %w", err)
	}
	return n, nil
}

func (r itemReader) QueryItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	where, args := buildItemWhere(filter)
	query := "SELECT " + itemColumns + " FROM items" + where + " ORDER BY sku ASC"

	var items []domain.Item
	if err := r.q.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("itemRepo.QueryItems: %w", err)
	}
	return items, nil
}

func (r itemReader) FirstImageFor(ctx context.Context, sku int64) (*domain.ItemImage, error) {
	var img domain.ItemImage
	err := r.q.GetContext(ctx, &img,
		`SELECT id, item_sku, filename, uploaded_at FROM item_images
		WHERE item_sku = $1 ORDER BY id ASC LIMIT 1`, sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("itemRepo.FirstImageFor: %w", err)
	}
	return &img, nil
}

// buildItemWhere renders an ItemFilter as a WHERE clause with positional
// parameters. Date bounds compare calendar dates and are inclusive.
func buildItemWhere(filter domain.ItemFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	argIdx := 1

	if filter.Sold != nil {
		clauses = append(clauses, fmt.Sprintf("sold = $%d", argIdx))
		args = append(args, *filter.Sold)
		argIdx++
	}
	if filter.Range.Start != nil {
		clauses = append(clauses, fmt.Sprintf("date_sold >= $%d::date", argIdx))
		args = append(args, filter.Range.Start.Format(domain.DateLayout))
		argIdx++
	}
	if filter.Range.End != nil {
		clauses = append(clauses, fmt.Sprintf("date_sold <= $%d::date", argIdx))
		args = append(args, filter.Range.End.Format(domain.DateLayout))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
