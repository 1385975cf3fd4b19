/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the HTTP surface. These decouple the internal domain
  model from the wire contract; handlers build them, nothing else does.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

Dates cross the wire as "2006-01-02"; attributed session dates keep their
report form ("14 Feb 2024") since clients display them verbatim.

SEE ALSO:
  - handlers.go: Builds these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenix/reimburse-engine/engine"
	"github.com/phoenix/reimburse-engine/period"
)

const wireDate = "2006-01-02"

// PeriodDTO represents a computed period.
type PeriodDTO struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	Payment      string `json:"payment"`
	PaymentMonth string `json:"payment_month"`
	Label        string `json:"label"`
}

func newPeriodDTO(p period.Period) PeriodDTO {
	return PeriodDTO{
		Start:        p.Start.Format(wireDate),
		End:          p.End.Format(wireDate),
		Payment:      p.Payment.Format(wireDate),
		PaymentMonth: p.PaymentMonth(),
		Label:        p.Label(),
	}
}

// DirectorDTO represents one director's line of a run.
type DirectorDTO struct {
	Initials string   `json:"initials"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Amount   string   `json:"amount"`
	Dates    []string `json:"dates"`
}

// RunDTO represents one completed calculation run.
type RunDTO struct {
	RunID         string        `json:"run_id"`
	Period        PeriodDTO     `json:"period"`
	Directors     []DirectorDTO `json:"directors"`
	DisplayReport []string      `json:"display_report"`
	ExportReport  []string      `json:"export_report"`
	Total         string        `json:"total"`
	Credited      int           `json:"credited"`
}

func newRunDTO(res *engine.Result, rate decimal.Decimal) RunDTO {
	dto := RunDTO{
		RunID:         res.RunID.String(),
		Period:        newPeriodDTO(res.Period),
		Directors:     []DirectorDTO{},
		DisplayReport: res.Report.Display,
		ExportReport:  res.Report.Export,
		Total:         res.Report.Total.String(),
		Credited:      res.Credited,
	}
	for _, d := range res.Registry.Directors() {
		payable := d.Payable(rate)
		if !d.Active || !payable.IsPositive() {
			continue
		}
		dto.Directors = append(dto.Directors, DirectorDTO{
			Initials: d.Initials,
			Name:     d.Name,
			Username: d.Username,
			Email:    d.Email,
			Amount:   payable.String(),
			Dates:    d.Dates,
		})
	}
	return dto
}

// RunRequest asks for a calculation run.
type RunRequest struct {
	// ReferenceDate in "2006-01-02" form; empty means today.
	ReferenceDate string `json:"reference_date"`
}

// NotifyRequest asks for notifications covering a run's period.
type NotifyRequest struct {
	ReferenceDate string `json:"reference_date"`
	Send          bool   `json:"send"`
	ToFile        bool   `json:"to_file"`
}

// NotifyResponseDTO reports what a notification dispatch did.
type NotifyResponseDTO struct {
	Sent int    `json:"sent"`
	File string `json:"file,omitempty"`
}

// ErrorDTO is the uniform error body.
type ErrorDTO struct {
	Error string `json:"error"`
}

func parseWireDate(s string, fallback time.Time) (time.Time, bool) {
	if s == "" {
		return fallback, true
	}
	t, err := time.Parse(wireDate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
