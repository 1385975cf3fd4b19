/*
sender.go - Delivery transports

PURPOSE:
  The dispatcher talks to a Sender; how delivery actually happens is this
  file's problem. Two transports exist: SMTP over SSL (gomail) for real
  sends, and a file sink that collects every message into one dated text
  file for the operator's records.

SEE ALSO:
  - dispatcher.go: Chooses recipients and drives a Sender
  - config/config.go: SMTP settings come from the environment
*/
package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// Message is one rendered notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers rendered messages. Implementations must be safe to call
// sequentially within a single run; no concurrent use happens.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// =============================================================================
// SMTP SENDER
// =============================================================================

// SMTP delivers messages through an SSL SMTP server.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP validates the transport settings and builds the sender. Missing
// settings are an ErrTransportSetup - caught before any message is built.
func NewSMTP(host string, port int, sender, key string) (*SMTP, error) {
	if host == "" || port == 0 || sender == "" || key == "" {
		return nil, ErrTransportSetup
	}
	d := gomail.NewDialer(host, port, sender, key)
	d.SSL = true
	return &SMTP{dialer: d, from: sender}, nil
}

func (s *SMTP) Send(_ context.Context, m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		if isAuthFailure(err) {
			return &DeliveryError{Recipient: m.To, Cause: fmt.Errorf("%w: %v", ErrAuthFailed, err)}
		}
		return &DeliveryError{Recipient: m.To, Cause: err}
	}
	return nil
}

// isAuthFailure recognises a rejected login. SMTP auth rejections come back
// as 535 replies; gomail surfaces them as plain errors, so the reply code
// is all there is to go on.
func isAuthFailure(err error) bool {
	s := err.Error()
	return strings.Contains(s, "535") || strings.Contains(strings.ToLower(s), "auth")
}

// =============================================================================
// FILE SINK
// =============================================================================

// FileSink collects messages and writes them as one dated text file,
// recipient and subject above each body, a rule between messages.
type FileSink struct {
	Dir    string
	Prefix string

	blocks []string
}

func (f *FileSink) Send(_ context.Context, m Message) error {
	f.blocks = append(f.blocks, fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n",
		m.To, m.Subject, m.Body, strings.Repeat("-", 50)))
	return nil
}

// Flush writes the collected messages to {Dir}/{Prefix}_{yyyymmdd}.txt and
// returns the path. Nothing is written when no messages were collected.
func (f *FileSink) Flush(now time.Time) (string, error) {
	if len(f.blocks) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(f.Dir, fmt.Sprintf("%s_%s.txt", f.Prefix, now.Format("20060102")))
	if err := os.WriteFile(path, []byte(strings.Join(f.blocks, "")), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
