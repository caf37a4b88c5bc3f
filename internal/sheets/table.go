// Package sheets stores schedule rows in a Google Sheets tab.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/cesargomez89/praiseteam/internal/logger"
)

const (
	firstColumn = "A"
	lastColumn  = "AS"
	// headerRows is the number of rows above the first data row.
	headerRows = 1
)

// Config identifies the spreadsheet and the service account used to reach it.
type Config struct {
	SpreadsheetID string
	// SheetName selects a tab by title. Empty means the first tab.
	SheetName string
	// SheetGID is the numeric id of the same tab, needed for row deletion.
	SheetGID            int64
	ServiceAccountEmail string
	PrivateKey          string
}

// Table implements schedule.Table on top of the Sheets v4 API.
type Table struct {
	svc    *gsheets.Service
	cfg    Config
	logger *logger.Logger
}

// New builds a Table. Without client options it authenticates with the
// configured service account; tests pass their own endpoint and client.
func New(ctx context.Context, cfg Config, log *logger.Logger, opts ...option.ClientOption) (*Table, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if log == nil {
		log = logger.Default()
	}

	if len(opts) == 0 {
		jwtCfg := &jwt.Config{
			Email:      cfg.ServiceAccountEmail,
			PrivateKey: []byte(cfg.PrivateKey),
			Scopes:     []string{gsheets.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = append(opts, option.WithHTTPClient(jwtCfg.Client(ctx)))
	}

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Table{
		svc:    svc,
		cfg:    cfg,
		logger: log.WithComponent("sheets"),
	}, nil
}

func (t *Table) Rows(ctx context.Context) ([][]string, error) {
	rng := t.rangeRef(fmt.Sprintf("%s%d:%s", firstColumn, headerRows+1, lastColumn))
	resp, err := t.svc.Spreadsheets.Values.Get(t.cfg.SpreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rng, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, values := range resp.Values {
		rows[i] = toCells(values)
	}
	t.logger.Debug("Read rows", "range", rng, "count", len(rows))
	return rows, nil
}

func (t *Table) Append(ctx context.Context, row []string) error {
	rng := t.rangeRef(firstColumn + ":" + lastColumn)
	_, err := t.svc.Spreadsheets.Values.Append(t.cfg.SpreadsheetID, rng, valueRange(row)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", rng, err)
	}
	return nil
}

func (t *Table) Update(ctx context.Context, index int, row []string) error {
	if index < 0 {
		return fmt.Errorf("row index %d out of range", index)
	}
	n := index + headerRows + 1
	rng := t.rangeRef(fmt.Sprintf("%s%d:%s%d", firstColumn, n, lastColumn, n))
	_, err := t.svc.Spreadsheets.Values.Update(t.cfg.SpreadsheetID, rng, valueRange(row)).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

// Delete removes the row from the grid so later rows shift up.
func (t *Table) Delete(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("row index %d out of range", index)
	}
	start := int64(index + headerRows)
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:         t.cfg.SheetGID,
					Dimension:       "ROWS",
					StartIndex:      start,
					EndIndex:        start + 1,
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	if _, err := t.svc.Spreadsheets.BatchUpdate(t.cfg.SpreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d: %w", index, err)
	}
	return nil
}

func (t *Table) rangeRef(cells string) string {
	if t.cfg.SheetName == "" {
		return cells
	}
	return "'" + strings.ReplaceAll(t.cfg.SheetName, "'", "''") + "'!" + cells
}

func valueRange(row []string) *gsheets.ValueRange {
	values := make([]interface{}, len(row))
	for i, c := range row {
		values[i] = c
	}
	return &gsheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{values},
	}
}

func toCells(values []interface{}) []string {
	cells := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		cells[i] = fmt.Sprint(v)
	}
	return cells
}
