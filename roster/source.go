/*
source.go - Roster source contract and decoded row model

PURPOSE:
  The core never parses the spreadsheet binary format. A Source hands it the
  two roster tables as ordered sequences of decoded cells: dates are already
  date values, blanks are distinguishable from zero, everything else is
  trimmed text. Decoding happens exactly once, at the source boundary.

IMPLEMENTATIONS:
  - store/xlsx: reads the production two-sheet workbook
  - Memory: in-memory rows for tests and demos

SEE ALSO:
  - registry.go: Consumes director rows
  - attribute.go: Consumes schedule rows
*/
package roster

import (
	"context"
	"time"
)

// =============================================================================
// SOURCE - Interface to the roster document
// =============================================================================

// Source provides the two roster tables. The document is loaded in full
// before attribution begins; there is no streaming or partial delivery.
type Source interface {
	// DirectorRows returns the registry table rows, in sheet order.
	DirectorRows(ctx context.Context) ([]Row, error)

	// ScheduleRows returns the schedule table rows, in sheet order.
	ScheduleRows(ctx context.Context) ([]Row, error)
}

// =============================================================================
// ROWS AND CELLS
// =============================================================================

// Row is an ordered sequence of decoded cells.
type Row []Cell

// Cell is a single decoded roster cell. A cell is either blank, a date, or
// text - never silently both.
type Cell struct {
	Text   string
	Date   time.Time
	IsDate bool
}

// Blank reports whether the cell holds nothing at all.
func (c Cell) Blank() bool {
	return !c.IsDate && c.Text == ""
}

// TextCell builds a text cell.
func TextCell(s string) Cell { return Cell{Text: s} }

// DateCell builds a date cell.
func DateCell(d time.Time) Cell { return Cell{Date: d, IsDate: true} }

// At returns the cell at index i, or a blank cell when the row is too
// short. Short rows are common in hand-maintained sheets and are treated as
// trailing blanks rather than errors.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// =============================================================================
// MEMORY SOURCE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is a Source backed by slices.
type Memory struct {
	Directors []Row
	Schedule  []Row
}

func (m *Memory) DirectorRows(_ context.Context) ([]Row, error) {
	return m.Directors, nil
}

func (m *Memory) ScheduleRows(_ context.Context) ([]Row, error) {
	return m.Schedule, nil
}
