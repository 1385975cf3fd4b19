/*
registry.go - Director records and the initials registry

PURPOSE:
  Turns registry table rows into Director records keyed by initials. The
  registry is built fresh for every calculation run, mutated only by the
  attribution pass, and then handed read-only to reporting and notification.

ROW LAYOUT (registry table):
  col 0: initials   col 1: full name   col 2: email
  col 3: username   col 4: active flag (any non-blank value = active)

SEE ALSO:
  - attribute.go: Appends session dates to Director.Dates
  - report/: Derives payable amounts from Dates
*/
package roster

import (
	"strings"

	"github.com/shopspring/decimal"
)

// headerMarker is the literal first cell of the registry heading row.
const headerMarker = "Initials"

// Registry table column positions.
const (
	colInitials = 0
	colName     = 1
	colEmail    = 2
	colUsername = 3
	colActive   = 4
)

// =============================================================================
// DIRECTOR
// =============================================================================

// Director is one session director. Dates starts empty and is appended to
// only by the attribution pass, in schedule-row encounter order. The
// payable amount is derived, never stored.
type Director struct {
	Initials  string
	Name      string
	FirstName string
	Email     string
	Username  string
	Active    bool

	// Dates holds the attributed session dates, formatted for display.
	Dates []string
}

// Payable returns the amount owed: attributed sessions times the unit rate.
func (d *Director) Payable(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(len(d.Dates))))
}

// firstName is the substring before the first space of the full name; a
// name with no space yields the whole string.
func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i]
	}
	return name
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps initials to directors while preserving insertion order.
// Reports iterate in insertion order, which is the registry sheet order.
type Registry struct {
	byInitials map[string]*Director
	order      []string
}

func NewRegistry() *Registry {
	return &Registry{byInitials: make(map[string]*Director)}
}

// Add inserts a director. Duplicate initials overwrite the earlier entry
// (keeping its position) - the last row in the sheet wins. This mirrors the
// observed roster behavior; it is an overwrite, not a merge.
func (r *Registry) Add(d *Director) {
	if _, ok := r.byInitials[d.Initials]; !ok {
		r.order = append(r.order, d.Initials)
	}
	r.byInitials[d.Initials] = d
}

// Get looks up a director by initials.
func (r *Registry) Get(initials string) (*Director, bool) {
	d, ok := r.byInitials[initials]
	return d, ok
}

// Directors returns all directors in insertion order.
func (r *Registry) Directors() []*Director {
	out := make([]*Director, 0, len(r.order))
	for _, initials := range r.order {
		out = append(out, r.byInitials[initials])
	}
	return out
}

// Len returns the number of registered directors.
func (r *Registry) Len() int {
	return len(r.order)
}

// =============================================================================
// REGISTRY BUILDER
// =============================================================================

// BuildRegistry constructs the registry from registry table rows.
//
// Rows whose first cell is blank or holds the heading marker are skipped.
// A director is active when the activity cell is non-blank. Rows with a
// non-empty initials cell but missing name/email/username are passed
// through as-is; this layer does not validate them, and downstream
// consumers tolerate the missing fields.
func BuildRegistry(rows []Row) *Registry {
	reg := NewRegistry()
	for _, row := range rows {
		initials := row.At(colInitials)
		if initials.Blank() || initials.Text == headerMarker {
			continue
		}
		name := row.At(colName).Text
		reg.Add(&Director{
			Initials:  initials.Text,
			Name:      name,
			FirstName: firstName(name),
			Email:     row.At(colEmail).Text,
			Username:  row.At(colUsername).Text,
			Active:    !row.At(colActive).Blank(),
			Dates:     []string{},
		})
	}
	return reg
}
