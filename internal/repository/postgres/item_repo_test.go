package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resaletrack/internal/domain"
	"resaletrack/internal/port"
)

func newMockRepo(t *testing.T) (port.ItemRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewItemRepo(sqlx.NewDb(db, "sqlmock")), mock
}

func day(s string) *time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return &t
}

func TestBuildItemWhere(t *testing.T) {
	sold := true
	tests := []struct {
		name      string
		filter    domain.ItemFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filter",
			filter:    domain.ItemFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "sold only",
			filter:    domain.ItemFilter{Sold: &sold},
			wantWhere: " WHERE sold = $1",
			wantArgs:  []interface{}{true},
		},
		{
			name:      "sold in closed range",
			filter:    domain.SoldInRange(domain.DateRange{Start: day("2024-02-01"), End: day("2024-02-29")}),
			wantWhere: " WHERE sold = $1 AND date_sold >= $2::date AND date_sold <= $3::date",
			wantArgs:  []interface{}{true, "2024-02-01", "2024-02-29"},
		},
		{
			name:      "open start",
			filter:    domain.ItemFilter{Range: domain.DateRange{End: day("2024-12-31")}},
			wantWhere: " WHERE date_sold <= $1::date",
			wantArgs:  []interface{}{"2024-12-31"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildItemWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestItemRepo_CountAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	n, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_CountSold(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items WHERE sold = $1 AND date_sold >= $2::date")).
		WithArgs(true, "2024-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountSold(context.Background(), domain.DateRange{Start: day("2024-03-01")})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_QueryItems(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"sku", "item_name", "category", "sold", "date_sold", "buyer_paid_amount", "cog"}).
		AddRow(int64(3), "Lamp", "Home", true, *day("2024-03-02"), 40.0, nil).
		AddRow(int64(9), "Vase", nil, true, *day("2024-03-09"), nil, 12.5)
	mock.ExpectQuery(`SELECT sku, item_name, .* FROM items WHERE sold = \$1 ORDER BY sku ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	items, err := repo.QueryItems(context.Background(), domain.SoldInRange(domain.DateRange{}))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(3), items[0].SKU)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "Home", *items[0].Category)
	assert.Equal(t, 40.0, domain.Amount(items[0].BuyerPaidAmount))
	assert.Nil(t, items[0].COG)

	assert.Nil(t, items[1].Category)
	assert.Nil(t, items[1].BuyerPaidAmount)
	assert.Equal(t, -12.5, items[1].Profit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_QueryItemsError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT sku, .* FROM items ORDER BY sku ASC`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.QueryItems(context.Background(), domain.ItemFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itemRepo.QueryItems")
}

func TestItemRepo_FirstImageFor(t *testing.T) {
	repo, mock := newMockRepo(t)
	uploaded := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, item_sku, filename, uploaded_at FROM item_images WHERE item_sku = \$1 ORDER BY id ASC LIMIT 1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_sku", "filename", "uploaded_at"}).
			AddRow(int64(12), int64(7), "SKU7_a.jpg", uploaded))

	img, err := repo.FirstImageFor(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(12), img.ID)
	assert.Equal(t, "SKU7_a.jpg", img.Filename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_FirstImageForNoImages(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM item_images`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_sku", "filename", "uploaded_at"}))

	_, err := repo.FirstImageFor(context.Background(), 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepo_ReadSnapshotCommits(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	var total int
	err := repo.ReadSnapshot(context.Background(), func(r port.ItemReader) error {
		var err error
		total, err = r.CountAll(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_ReadSnapshotRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.ReadSnapshot(context.Background(), func(port.ItemReader) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_ReadSnapshotBeginFails(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := repo.ReadSnapshot(context.Background(), func(port.ItemReader) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
