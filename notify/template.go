/*
template.go - Email template loading and placeholder substitution

The template is a plain text file maintained by the club, with literal
placeholders rather than Go template syntax - the file is edited by
non-programmers and the original placeholder vocabulary is kept:

  <first name>  director's first name
  <dollars>     amount owed this period
  <period>      period start date
  <dates>       comma-separated attributed session dates
*/
package notify

import (
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenix/reimburse-engine/period"
	"github.com/phoenix/reimburse-engine/roster"
)

// LoadTemplate reads the template file. A missing or unreadable file is a
// TemplateError; the dispatcher surfaces it before any send is attempted.
func LoadTemplate(path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", &TemplateError{Path: path}
	}
	return string(body), nil
}

// Render substitutes one director's values into the template.
func Render(template string, d *roster.Director, periodStart time.Time, rate decimal.Decimal) string {
	places := int32(0)
	if !rate.IsInteger() {
		places = 2
	}

	body := template
	body = strings.ReplaceAll(body, "<first name>", d.FirstName)
	body = strings.ReplaceAll(body, "<dollars>", d.Payable(rate).StringFixed(places))
	body = strings.ReplaceAll(body, "<period>", periodStart.Format(period.DateFormat))
	body = strings.ReplaceAll(body, "<dates>", strings.Join(d.Dates, ", "))
	return body
}
