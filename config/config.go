/*
Package config loads run settings from the environment.

PURPOSE:
  One Settings value is loaded at startup and passed explicitly into every
  core call - there is no process-wide configuration state, and nothing a
  run does ever writes settings back.

SOURCES:
  A .env file (when present) via godotenv, then the process environment,
  parsed into the env-tagged struct. Validation happens once at load time:
  malformed cadence or rate values fail fast here, never mid-run.

VARIABLES:
  PERIOD_START_MONTH  cadence anchor month, 1..12 (default 1)
  PERIOD_MONTHS       period length in months (default 3)
  SESSION_RATE        payment per directed session, decimal (default 3)
  WORKBOOK_PATH       roster workbook location
  DATA_DIR            where email files are written
  EMAIL_TEMPLATE      template file path
  EMAIL_SUBJECT       subject line for notifications
  EMAIL_FILE_PREFIX   prefix of the dated emails file
  SEND_EMAILS         deliver over SMTP (default false)
  EMAILS_TO_FILE      also write the emails file (default true)
  SMTP_SERVER / SMTP_PORT / EMAIL_SENDER / EMAIL_KEY  transport settings
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/phoenix/reimburse-engine/period"
)

// ErrInvalidRate is returned when SESSION_RATE is not a positive decimal.
var ErrInvalidRate = errors.New("invalid session rate")

// Settings is the full run configuration. Rate is the parsed form of
// SessionRate; everything else is used as-is.
type Settings struct {
	PeriodStartMonth int    `env:"PERIOD_START_MONTH" envDefault:"1" validate:"min=1,max=12"`
	PeriodMonths     int    `env:"PERIOD_MONTHS" envDefault:"3" validate:"min=1"`
	SessionRate      string `env:"SESSION_RATE" envDefault:"3" validate:"required"`

	WorkbookPath    string `env:"WORKBOOK_PATH" envDefault:"directors-rota.xlsx"`
	DataDir         string `env:"DATA_DIR" envDefault:"data"`
	EmailTemplate   string `env:"EMAIL_TEMPLATE" envDefault:"reimbursement_email_template.txt"`
	EmailSubject    string `env:"EMAIL_SUBJECT" envDefault:"Phoenix Bridge Club - Director's playing fees"`
	EmailFilePrefix string `env:"EMAIL_FILE_PREFIX" envDefault:"emails"`
	SendEmails      bool   `env:"SEND_EMAILS" envDefault:"false"`
	EmailsToFile    bool   `env:"EMAILS_TO_FILE" envDefault:"true"`

	SMTPServer  string `env:"SMTP_SERVER"`
	SMTPPort    int    `env:"SMTP_PORT"`
	EmailSender string `env:"EMAIL_SENDER"`
	EmailKey    string `env:"EMAIL_KEY"`

	Rate decimal.Decimal `env:"-" validate:"-"`
}

// Load reads and validates settings. A .env file in the working directory
// is optional; the process environment always applies.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	rate, err := decimal.NewFromString(s.SessionRate)
	if err != nil || !rate.IsPositive() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRate, s.SessionRate)
	}
	s.Rate = rate

	if err := s.Cadence().Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Cadence returns the configured period cadence.
func (s *Settings) Cadence() period.Cadence {
	return period.Cadence{StartMonth: time.Month(s.PeriodStartMonth), Months: s.PeriodMonths}
}
