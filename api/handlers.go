/*
handlers.go - HTTP handlers for the reimbursement service

PURPOSE:
  Exposes the calculation engine over REST. Handlers parse the request,
  drive the domain packages, and serialize DTOs - no reimbursement logic
  lives here.

ENDPOINTS:
  Periods:
    GET  /api/period           Period for a reference date (?date=)
    GET  /api/period/previous  Previous period (?payment=)
    GET  /api/period/next      Next period (?payment=)

  Runs:
    POST /api/runs             Execute a calculation run
    GET  /api/runs/export      Export report as plain text (?date=)

  Notifications:
    POST /api/notifications    Dispatch emails and/or the emails file

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed dates or request bodies
  - 404: Roster workbook or email template not found
  - 422: Roster data errors (unknown director initials)
  - 502: Mail transport failures
  - 500: Everything else

REQUEST FLOW:
  Every run opens the workbook fresh - the roster may have been edited
  between requests, and a run must see a consistent full document.

SEE ALSO:
  - dto.go: Wire types
  - server.go: Router and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/phoenix/reimburse-engine/config"
	"github.com/phoenix/reimburse-engine/engine"
	"github.com/phoenix/reimburse-engine/notify"
	"github.com/phoenix/reimburse-engine/period"
	"github.com/phoenix/reimburse-engine/roster"
	"github.com/phoenix/reimburse-engine/store/xlsx"
)

// SourceOpener opens the roster source for one run and returns it with its
// cleanup func. Tests inject in-memory sources through this.
type SourceOpener func() (roster.Source, func() error, error)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Settings   *config.Settings
	Log        *logrus.Logger
	OpenSource SourceOpener
	Now        func() time.Time
}

// NewHandler wires the default collaborators: the xlsx workbook at the
// configured path and the real clock.
func NewHandler(settings *config.Settings, log *logrus.Logger) *Handler {
	h := &Handler{Settings: settings, Log: log, Now: time.Now}
	h.OpenSource = func() (roster.Source, func() error, error) {
		s, err := xlsx.Open(settings.WorkbookPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return h
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// GetPeriod returns the period containing the reference date.
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	ref, ok := parseWireDate(r.URL.Query().Get("date"), h.Now())
	if !ok {
		respondError(w, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}
	respondJSON(w, http.StatusOK, newPeriodDTO(period.Compute(ref, h.Settings.Cadence())))
}

// PreviousPeriod navigates one period back from the given payment date.
func (h *Handler) PreviousPeriod(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(p period.Period) period.Period {
		return p.Previous(h.Settings.Cadence())
	})
}

// NextPeriod navigates one period forward from the given payment date.
func (h *Handler) NextPeriod(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(p period.Period) period.Period {
		return p.Next(h.Settings.Cadence())
	})
}

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request, step func(period.Period) period.Period) {
	ref, ok := parseWireDate(r.URL.Query().Get("payment"), h.Now())
	if !ok {
		respondError(w, http.StatusBadRequest, errors.New("payment must be YYYY-MM-DD"))
		return
	}
	respondJSON(w, http.StatusOK, newPeriodDTO(step(period.Compute(ref, h.Settings.Cadence()))))
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// CreateRun executes a calculation run and returns the full result.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	ref, ok := parseWireDate(req.ReferenceDate, h.Now())
	if !ok {
		respondError(w, http.StatusBadRequest, errors.New("reference_date must be YYYY-MM-DD"))
		return
	}

	res, err := h.run(r, ref)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newRunDTO(res, h.Settings.Rate))
}

// ExportRun returns the delimited export report as plain text, ready to be
// saved or pasted into another tool.
func (h *Handler) ExportRun(w http.ResponseWriter, r *http.Request) {
	ref, ok := parseWireDate(r.URL.Query().Get("date"), h.Now())
	if !ok {
		respondError(w, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}

	res, err := h.run(r, ref)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strings.Join(res.Report.Export, "\n") + "\n"))
}

// =============================================================================
// NOTIFICATION HANDLER
// =============================================================================

// Notify runs the calculation for the requested period and dispatches the
// resulting notifications to file and/or SMTP, in that order. The file pass
// runs first so a transport failure never loses the rendered emails.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	var req NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	ref, ok := parseWireDate(req.ReferenceDate, h.Now())
	if !ok {
		respondError(w, http.StatusBadRequest, errors.New("reference_date must be YYYY-MM-DD"))
		return
	}
	if !req.Send && !req.ToFile {
		respondError(w, http.StatusBadRequest, errors.New("nothing to do: set send and/or to_file"))
		return
	}

	res, err := h.run(r, ref)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := NotifyResponseDTO{}
	s := h.Settings

	if req.ToFile {
		sink := &notify.FileSink{Dir: s.DataDir, Prefix: s.EmailFilePrefix}
		d := notify.Dispatcher{
			TemplatePath: s.EmailTemplate,
			Subject:      s.EmailSubject,
			Rate:         s.Rate,
			Sender:       sink,
			Log:          h.Log,
		}
		if _, err := d.Dispatch(r.Context(), res.Period.Start, res.Registry); err != nil {
			respondDomainError(w, err)
			return
		}
		path, err := sink.Flush(h.Now())
		if err != nil {
			respondDomainError(w, err)
			return
		}
		out.File = path
	}

	if req.Send {
		sender, err := notify.NewSMTP(s.SMTPServer, s.SMTPPort, s.EmailSender, s.EmailKey)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		d := notify.Dispatcher{
			TemplatePath: s.EmailTemplate,
			Subject:      s.EmailSubject,
			Rate:         s.Rate,
			Sender:       sender,
			Log:          h.Log,
		}
		sent, err := d.Dispatch(r.Context(), res.Period.Start, res.Registry)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		out.Sent = sent
	}

	respondJSON(w, http.StatusOK, out)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) run(r *http.Request, ref time.Time) (*engine.Result, error) {
	source, closeSource, err := h.OpenSource()
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeSource() }()

	e := &engine.Engine{
		Source:  source,
		Cadence: h.Settings.Cadence(),
		Rate:    h.Settings.Rate,
		Log:     h.Log,
	}
	return e.Run(r.Context(), ref)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, ErrorDTO{Error: err.Error()})
}

// respondDomainError maps domain failures onto HTTP statuses. The message
// always carries the structured detail (offending initials, missing path)
// so the operator can fix the roster or configuration.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, roster.ErrUnknownDirector):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, roster.ErrSourceUnavailable),
		errors.Is(err, notify.ErrTemplateMissing):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, notify.ErrAuthFailed),
		errors.Is(err, notify.ErrTransportSetup):
		respondError(w, http.StatusBadGateway, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
