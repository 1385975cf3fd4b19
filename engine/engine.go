/*
Package engine runs a single reimbursement calculation.

PURPOSE:
  Orchestrates one run start to finish: derive the period from the
  reference date, load the roster, build the registry, attribute sessions,
  render the reports. One run is synchronous and single-threaded; the
  registry is built and mutated by this one pass and then handed read-only
  to reporting and notification. A failed run produces no report.

IDEMPOTENCY:
  Runs never mutate configuration or the roster source, so repeating a run
  with the same inputs yields the same result (apart from the run ID, which
  exists for log correlation only).

SEE ALSO:
  - period/: Window derivation
  - roster/: Registry and attribution
  - report/: Output rendering
*/
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/phoenix/reimburse-engine/period"
	"github.com/phoenix/reimburse-engine/report"
	"github.com/phoenix/reimburse-engine/roster"
)

// Engine holds the collaborators for calculation runs. All fields are
// supplied once at construction; Run never changes them.
type Engine struct {
	Source  roster.Source
	Cadence period.Cadence
	Rate    decimal.Decimal
	Log     *logrus.Logger
}

// Result is everything one run produces.
type Result struct {
	RunID    uuid.UUID
	Period   period.Period
	Registry *roster.Registry
	Report   report.Report

	// Credited is the number of distinct directors who earned anything.
	Credited int
}

// Run executes one calculation for the given reference date.
func (e *Engine) Run(ctx context.Context, reference time.Time) (*Result, error) {
	runID := uuid.New()
	p := period.Compute(reference, e.Cadence)

	log := e.log().WithFields(logrus.Fields{
		"run_id": runID,
		"period": p.String(),
	})
	log.WithFields(logrus.Fields{
		"from": p.Start.Format(period.DateFormat),
		"to":   p.End.Format(period.DateFormat),
	}).Info("calculation started")

	directorRows, err := e.Source.DirectorRows(ctx)
	if err != nil {
		return nil, err
	}
	registry := roster.BuildRegistry(directorRows)
	log.WithField("directors", registry.Len()).Info("retrieved director records")

	scheduleRows, err := e.Source.ScheduleRows(ctx)
	if err != nil {
		return nil, err
	}
	credited, err := roster.Attribute(p, scheduleRows, registry)
	if err != nil {
		return nil, err
	}
	log.WithField("credited", credited).Info("retrieved directed date records")

	rep := report.Build(registry, e.Rate)
	log.WithField("total", rep.Total.String()).Info("reports created")

	return &Result{
		RunID:    runID,
		Period:   p,
		Registry: registry,
		Report:   rep,
		Credited: credited,
	}, nil
}

func (e *Engine) log() *logrus.Logger {
	if e.Log != nil {
		return e.Log
	}
	return logrus.StandardLogger()
}
