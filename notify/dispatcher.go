/*
dispatcher.go - Notification dispatch for one reimbursement run

PURPOSE:
  Given the period start date and the attributed registry, renders one
  message per director owed money and hands each to the configured Sender.
  Returns the number of messages delivered; stops at the first failure.

RECIPIENT RULE:
  Every director with a positive payable amount gets a message, whether or
  not the active flag is set. (The reports filter on active; the email pass
  never has.)
*/
package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/phoenix/reimburse-engine/roster"
)

// Dispatcher renders and delivers reimbursement notifications.
type Dispatcher struct {
	TemplatePath string
	Subject      string
	Rate         decimal.Decimal
	Sender       Sender
	Log          *logrus.Logger
}

// Dispatch sends one message per director owed money. The template is
// loaded before the first send, so a missing template fails the whole
// dispatch without delivering anything.
func (d *Dispatcher) Dispatch(ctx context.Context, periodStart time.Time, reg *roster.Registry) (int, error) {
	template, err := LoadTemplate(d.TemplatePath)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, director := range reg.Directors() {
		if !director.Payable(d.Rate).IsPositive() {
			continue
		}
		msg := Message{
			To:      director.Email,
			Subject: d.Subject,
			Body:    Render(template, director, periodStart, d.Rate),
		}
		if err := d.Sender.Send(ctx, msg); err != nil {
			return sent, err
		}
		sent++
		if d.Log != nil {
			d.Log.WithFields(logrus.Fields{
				"initials":  director.Initials,
				"recipient": director.Email,
			}).Debug("notification sent")
		}
	}

	if d.Log != nil {
		d.Log.WithField("sent", sent).Info("notifications dispatched")
	}
	return sent, nil
}
