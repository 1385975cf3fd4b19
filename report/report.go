/*
Package report renders reimbursement reports.

PURPOSE:
  Derives the two report representations from an attributed registry: a
  fixed-width display form for on-screen review, and a comma-delimited
  export form. Both are plain line sequences ending in a totals line, built
  once and never mutated afterwards.

INCLUSION RULE:
  A director appears only when active AND owed a positive amount. Rows
  follow registry insertion order - the order directors appear in the
  roster sheet, kept deliberately instead of sorting.

NUMBER FORMATTING:
  Amounts are whole numbers unless the configured rate is fractional, in
  which case every amount in both forms uses two decimal places.

SEE ALSO:
  - roster/registry.go: Where payable amounts come from
  - notify/: Uses the same payable rule to pick recipients
*/
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phoenix/reimburse-engine/roster"
)

// Column headings shared by both report forms.
var heading = struct {
	Name, Username, Amount, Dates, Total string
}{"Name", "Username", "Fee", "Dates directed", "Total"}

// Report holds the two parallel renderings of one reimbursement run.
type Report struct {
	// Display is the fixed-width human-readable form.
	Display []string

	// Export is the comma-delimited form. The dates field itself contains
	// ", " separators, so the export is a loose delimited text rather than
	// strict CSV; consumers split on the first three commas.
	Export []string

	// Total is the sum owed across all included directors.
	Total decimal.Decimal
}

// Build renders both report forms for the registry at the given unit rate.
func Build(reg *roster.Registry, rate decimal.Decimal) Report {
	places := int32(0)
	if !rate.IsInteger() {
		places = 2
	}

	display := []string{fmt.Sprintf("%-20s %-10s %4s %s",
		heading.Name, heading.Username, heading.Amount, heading.Dates)}
	export := []string{fmt.Sprintf("%s,%s,%s,%s",
		heading.Name, heading.Username, heading.Amount, heading.Dates)}

	total := decimal.Zero
	for _, d := range reg.Directors() {
		payable := d.Payable(rate)
		if !d.Active || !payable.IsPositive() {
			continue
		}
		dates := strings.Join(d.Dates, ", ")
		display = append(display, fmt.Sprintf("%-20s %-10s %4s %s",
			d.Name, d.Username, payable.StringFixed(places), dates))
		export = append(export, fmt.Sprintf("%s,%s,%s,%s",
			d.Name, d.Username, payable.StringFixed(places), dates))
		total = total.Add(payable)
	}

	display = append(display, fmt.Sprintf("%-20s %-10s %4s",
		heading.Total, "", total.StringFixed(places)))
	export = append(export, fmt.Sprintf("%s,,%s", heading.Total, total.StringFixed(places)))

	return Report{Display: display, Export: export, Total: total}
}
