/*
attribute.go - Session attribution engine

PURPOSE:
  Scans the schedule table and credits each session inside the period window
  to exactly one director. This is the algorithmic heart of the system.

ROW LAYOUT (schedule table):
  Each schedule row carries two weekly slots, one triple per slot:

    col 0: session date   col 1: primary initials   col 2: substitute
    col 3: session date   col 4: primary initials   col 5: substitute

  Only rows whose first cell is a date are schedule rows; blank separators
  and heading rows are skipped.

RESOLUTION RULE:
  When a substitute is named, the substitute is credited and the primary
  receives nothing for that date. The substitute fully overrides the primary
  for payment purposes.

ORDERING:
  Sessions are credited in row order, first slot before second, and that
  order is preserved in each director's Dates and therefore in the reports.

SEE ALSO:
  - period/period.go: The half-open attribution window
  - registry.go: The records being credited
*/
package roster

import (
	"github.com/phoenix/reimburse-engine/period"
)

// slotOffsets are the column positions of the two weekly slots' date cells.
var slotOffsets = [2]int{0, 3}

// Attribute credits every in-window session to its director, appending the
// formatted session date to that director's Dates. It returns the number of
// distinct directors credited.
//
// A slot is skipped when its date or primary cell is blank, or when the
// date falls outside [p.Start, p.End). A resolved initials code that is not
// in the registry aborts the run with an UnknownDirectorError - that is a
// roster data-entry mistake, not something to drop silently.
func Attribute(p period.Period, rows []Row, reg *Registry) (int, error) {
	credited := make(map[string]struct{})

	for _, row := range rows {
		if !row.At(0).IsDate {
			continue
		}
		for _, offset := range slotOffsets {
			date := row.At(offset)
			primary := row.At(offset + 1)
			substitute := row.At(offset + 2)

			if !date.IsDate || primary.Blank() {
				continue
			}
			if !p.Contains(date.Date) {
				continue
			}

			initials := primary.Text
			if !substitute.Blank() {
				initials = substitute.Text
			}

			director, ok := reg.Get(initials)
			if !ok {
				return len(credited), &UnknownDirectorError{Initials: initials, Date: date.Date}
			}
			director.Dates = append(director.Dates, date.Date.Format(period.DateFormat))
			credited[initials] = struct{}{}
		}
	}
	return len(credited), nil
}
