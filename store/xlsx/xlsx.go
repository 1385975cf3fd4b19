/*
Package xlsx provides an Excel-backed implementation of the roster source.

PURPOSE:
  Implements roster.Source by reading the club's two-sheet rota workbook:
  a "Directors" registry sheet and a "Main" schedule sheet. All format
  decoding happens here - the core only ever sees roster.Cell values.

CELL DECODING:
  Cells are read raw. A numeric value in the Excel date-serial range is
  decoded as a date; a few common textual date layouts are also accepted
  for sheets where date columns were typed by hand. Everything else is
  trimmed text, with "" meaning blank.

ERROR BEHAVIOR:
  A missing or unreadable workbook, or a missing sheet, surfaces as a
  roster.SourceError (wrapping roster.ErrSourceUnavailable) before any
  attribution is attempted.

SEE ALSO:
  - roster/source.go: The interface and cell model
  - roster.Memory: In-memory implementation for tests
*/
package xlsx

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/phoenix/reimburse-engine/roster"
)

// Workbook sheet names.
const (
	DirectorsSheet = "Directors"
	ScheduleSheet  = "Main"
)

// Excel date serials for 1955-01-01 and 2119-01-01. Serials outside this
// range are kept as text; roster dates all fall well inside it.
const (
	minDateSerial = 20090
	maxDateSerial = 80000
)

// dateLayouts are accepted for hand-typed date cells.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2 Jan 2006", "02 Jan 2006"}

// Store reads the rota workbook. The whole document is loaded on Open;
// row reads never touch the file again.
type Store struct {
	path string
	file *excelize.File
}

// Open loads the workbook at path.
func Open(path string) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &roster.SourceError{Path: path, Cause: err}
	}
	return &Store{path: path, file: f}, nil
}

// Close releases the workbook.
func (s *Store) Close() error {
	return s.file.Close()
}

// DirectorRows returns the registry sheet rows.
func (s *Store) DirectorRows(_ context.Context) ([]roster.Row, error) {
	return s.sheetRows(DirectorsSheet)
}

// ScheduleRows returns the schedule sheet rows.
func (s *Store) ScheduleRows(_ context.Context) ([]roster.Row, error) {
	return s.sheetRows(ScheduleSheet)
}

func (s *Store) sheetRows(sheet string) ([]roster.Row, error) {
	raw, err := s.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &roster.SourceError{Path: s.path + "#" + sheet, Cause: err}
	}

	rows := make([]roster.Row, 0, len(raw))
	for _, cells := range raw {
		row := make(roster.Row, len(cells))
		for i, cell := range cells {
			row[i] = decodeCell(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeCell turns a raw cell value into a typed roster cell.
func decodeCell(value string) roster.Cell {
	value = strings.TrimSpace(value)
	if value == "" {
		return roster.Cell{}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial >= minDateSerial && serial <= maxDateSerial {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return roster.DateCell(day(t))
			}
		}
		return roster.TextCell(value)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return roster.DateCell(day(t))
		}
	}
	return roster.TextCell(value)
}

// day truncates to a calendar date in UTC; session dates carry no
// time-of-day.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
