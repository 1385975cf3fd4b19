/*
Package period computes reimbursement periods.

PURPOSE:
  A reimbursement run always covers a period: a span of whole months ending
  the day before the nominal payment date. The payment date is the first day
  of the first month on the configured cadence at or before the reference
  date. Periods are derived values - they are recomputed fresh for every
  navigation step or calculation run and never mutated in place.

CADENCE:
  A cadence is (start month, length in months). With start month January and
  length 3, payment dates fall on 1 Jan, 1 Apr, 1 Jul, 1 Oct. Any positive
  length is accepted; it does not have to divide 12.

ATTRIBUTION WINDOW:
  The window is half-open: [Start, End). End is the last day of the month
  before the payment date, and sessions on End itself belong to the next
  period's run. See Period.Contains.

SEE ALSO:
  - roster/attribute.go: Uses Contains to select sessions
  - config/config.go: Validates cadence values at startup
*/
package period

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat is the presentation format for attributed session dates,
// e.g. "14 Feb 2024".
const DateFormat = "02 Jan 2006"

// MonthFormat labels a payment month, e.g. "Apr 2024".
const MonthFormat = "Jan 2006"

// ErrInvalidCadence is returned when cadence values are out of range.
// Cadence problems are configuration errors and should be caught at
// startup, before any calculation runs.
var ErrInvalidCadence = errors.New("invalid cadence")

// =============================================================================
// CADENCE
// =============================================================================

// Cadence describes how payment dates recur through the year.
type Cadence struct {
	// StartMonth anchors the cycle: the month whose first day is always a
	// payment date. 1..12.
	StartMonth time.Month

	// Months is the period length. Must be positive.
	Months int
}

// Validate checks the cadence bounds.
func (c Cadence) Validate() error {
	if c.StartMonth < time.January || c.StartMonth > time.December {
		return fmt.Errorf("%w: start month %d not in 1..12", ErrInvalidCadence, c.StartMonth)
	}
	if c.Months < 1 {
		return fmt.Errorf("%w: period length %d months", ErrInvalidCadence, c.Months)
	}
	return nil
}

// =============================================================================
// PERIOD
// =============================================================================

// Period is the date range a reimbursement run covers, plus its nominal
// payment date. Invariant: Start < End < Payment; Payment is the first day
// of a month; End is the day before Payment.
type Period struct {
	Start   time.Time
	End     time.Time
	Payment time.Time
}

// Compute derives the period for a reference date.
//
// Starting at the reference date's month, it walks backward one month at a
// time until it lands on the cadence. That month's first day (in the year
// the walk ends in) is the payment date; the period covers the c.Months
// months before it. The walk rolls into the previous year when it crosses
// January.
func Compute(reference time.Time, c Cadence) Period {
	year, month := reference.Year(), int(reference.Month())
	for (month-int(c.StartMonth))%c.Months != 0 {
		month--
		if month < 1 {
			month = 12
			year--
		}
	}

	payment := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Start:   payment.AddDate(0, -c.Months, 0),
		End:     payment.AddDate(0, 0, -1),
		Payment: payment,
	}
}

// Previous returns the period before p under the same cadence.
// Navigation is a fresh computation, never an in-place shift.
func (p Period) Previous(c Cadence) Period {
	return Compute(p.Payment.AddDate(0, -c.Months, 0), c)
}

// Next returns the period after p under the same cadence.
func (p Period) Next(c Cadence) Period {
	return Compute(p.Payment.AddDate(0, c.Months, 0), c)
}

// Contains reports whether a session date falls in the attribution window
// [Start, End). The end date itself is excluded: End is one day before the
// next payment date, and a session on it is picked up by the next run.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && d.Before(p.End)
}

// PaymentMonth returns the payment month label, e.g. "Apr 2024".
func (p Period) PaymentMonth() string {
	return p.Payment.Format(MonthFormat)
}

// Label describes the months covered, e.g. "Jan 2024 to Mar 2024".
func (p Period) Label() string {
	return fmt.Sprintf("%s to %s", p.Start.Format(MonthFormat), p.End.Format(MonthFormat))
}

// String returns a compact representation for logs.
func (p Period) String() string {
	return fmt.Sprintf("[%s, %s) pay %s",
		p.Start.Format("2006-01-02"),
		p.End.Format("2006-01-02"),
		p.Payment.Format("2006-01-02"))
}
