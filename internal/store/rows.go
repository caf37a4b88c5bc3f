package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cesargomez89/praiseteam/internal/domain"
)

// ErrRowOutOfRange is returned when an index does not address a stored row.
var ErrRowOutOfRange = errors.New("row index out of range")

type scheduleRow struct {
	Position int64              `db:"position"`
	Cells    domain.StringSlice `db:"cells"`
}

// rowAt selects the position of the index-th row.
const rowAt = `(SELECT position FROM schedule_rows ORDER BY position LIMIT 1 OFFSET ?)`

// Rows returns every stored row in position order.
func (db *DB) Rows(ctx context.Context) ([][]string, error) {
	var rows []scheduleRow
	if err := db.SelectContext(ctx, &rows, `SELECT position, cells FROM schedule_rows ORDER BY position`); err != nil {
		return nil, fmt.Errorf("select rows: %w", err)
	}

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string(r.Cells)
	}
	return out, nil
}

func (db *DB) Append(ctx context.Context, row []string) error {
	_, err := db.ExecContext(ctx, `INSERT INTO schedule_rows (cells, updated_at) VALUES (?, ?)`,
		domain.StringSlice(row), time.Now())
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

func (db *DB) Update(ctx context.Context, index int, row []string) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	res, err := db.ExecContext(ctx, `UPDATE schedule_rows SET cells = ?, updated_at = ? WHERE position = `+rowAt,
		domain.StringSlice(row), time.Now(), index)
	if err != nil {
		return fmt.Errorf("update row %d: %w", index, err)
	}
	return checkAffected(res.RowsAffected, index)
}

// Delete removes the index-th row; later rows shift up by one.
func (db *DB) Delete(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	res, err := db.ExecContext(ctx, `DELETE FROM schedule_rows WHERE position = `+rowAt, index)
	if err != nil {
		return fmt.Errorf("delete row %d: %w", index, err)
	}
	return checkAffected(res.RowsAffected, index)
}

func checkAffected(affected func() (int64, error), index int) error {
	n, err := affected()
	if err != nil {
		return fmt.Errorf("row %d: %w", index, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	return nil
}
