package notify_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix/reimburse-engine/notify"
	"github.com/phoenix/reimburse-engine/roster"
)

// recorder captures sent messages for assertions.
type recorder struct {
	messages []notify.Message
	fail     error
}

func (r *recorder) Send(_ context.Context, m notify.Message) error {
	if r.fail != nil {
		return r.fail
	}
	r.messages = append(r.messages, m)
	return nil
}

const template = "Dear <first name>,\nYou are owed $<dollars> for the period starting <period>.\nDates: <dates>\n"

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.txt")
	require.NoError(t, os.WriteFile(path, []byte(template), 0o644))
	return path
}

func notifyRegistry() *roster.Registry {
	reg := roster.NewRegistry()
	reg.Add(&roster.Director{Initials: "AB", Name: "Alice Brown", FirstName: "Alice",
		Email: "alice@example.com", Active: true, Dates: []string{"08 Jan 2024", "14 Feb 2024"}})
	reg.Add(&roster.Director{Initials: "CD", Name: "Carol Davis", FirstName: "Carol",
		Email: "carol@example.com", Active: true, Dates: []string{}})
	reg.Add(&roster.Director{Initials: "EF", Name: "Ed Finch", FirstName: "Ed",
		Email: "ed@example.com", Active: false, Dates: []string{"10 Jan 2024"}})
	return reg
}

func jan1() time.Time { return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) }

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	d := &roster.Director{FirstName: "Alice", Dates: []string{"08 Jan 2024", "14 Feb 2024"}}

	body := notify.Render(template, d, jan1(), decimal.NewFromInt(3))

	assert.Contains(t, body, "Dear Alice,")
	assert.Contains(t, body, "owed $6 ")
	assert.Contains(t, body, "starting 01 Jan 2024")
	assert.Contains(t, body, "Dates: 08 Jan 2024, 14 Feb 2024")
}

func TestRender_FractionalRate(t *testing.T) {
	d := &roster.Director{FirstName: "Alice", Dates: []string{"08 Jan 2024"}}

	body := notify.Render(template, d, jan1(), decimal.RequireFromString("3.75"))

	assert.Contains(t, body, "$3.75")
}

func TestDispatch_SendsToDirectorsOwedMoney(t *testing.T) {
	// GIVEN: Three directors, one owed money, one with no dates, one
	//        inactive but owed money
	// WHEN: Dispatching
	// THEN: Everyone with a positive payable gets mail - the active flag
	//       does not gate notifications
	rec := &recorder{}
	d := notify.Dispatcher{
		TemplatePath: writeTemplate(t),
		Subject:      "Playing fees",
		Rate:         decimal.NewFromInt(3),
		Sender:       rec,
	}

	sent, err := d.Dispatch(context.Background(), jan1(), notifyRegistry())

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, rec.messages, 2)
	assert.Equal(t, "alice@example.com", rec.messages[0].To)
	assert.Equal(t, "Playing fees", rec.messages[0].Subject)
	assert.Contains(t, rec.messages[0].Body, "Dear Alice,")
	assert.Equal(t, "ed@example.com", rec.messages[1].To)
}

func TestDispatch_TemplateMissing(t *testing.T) {
	rec := &recorder{}
	d := notify.Dispatcher{
		TemplatePath: filepath.Join(t.TempDir(), "nope.txt"),
		Rate:         decimal.NewFromInt(3),
		Sender:       rec,
	}

	sent, err := d.Dispatch(context.Background(), jan1(), notifyRegistry())

	require.ErrorIs(t, err, notify.ErrTemplateMissing)
	assert.Zero(t, sent)
	assert.Empty(t, rec.messages, "nothing is delivered when the template is missing")

	var te *notify.TemplateError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "nope.txt")
}

func TestDispatch_StopsOnSendFailure(t *testing.T) {
	rec := &recorder{fail: assert.AnError}
	d := notify.Dispatcher{
		TemplatePath: writeTemplate(t),
		Rate:         decimal.NewFromInt(3),
		Sender:       rec,
	}

	sent, err := d.Dispatch(context.Background(), jan1(), notifyRegistry())

	require.Error(t, err)
	assert.Zero(t, sent)
}

func TestNewSMTP_SetupValidation(t *testing.T) {
	_, err := notify.NewSMTP("", 465, "club@example.com", "key")
	require.ErrorIs(t, err, notify.ErrTransportSetup)

	_, err = notify.NewSMTP("smtp.example.com", 0, "club@example.com", "key")
	require.ErrorIs(t, err, notify.ErrTransportSetup)

	_, err = notify.NewSMTP("smtp.example.com", 465, "club@example.com", "key")
	require.NoError(t, err)
}

func TestFileSink_WritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	sink := &notify.FileSink{Dir: dir, Prefix: "emails"}

	require.NoError(t, sink.Send(context.Background(), notify.Message{
		To: "alice@example.com", Subject: "Fees", Body: "Dear Alice,",
	}))
	require.NoError(t, sink.Send(context.Background(), notify.Message{
		To: "ed@example.com", Subject: "Fees", Body: "Dear Ed,",
	}))

	path, err := sink.Flush(time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "emails_20240401.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "alice@example.com\nFees\n\nDear Alice,")
	assert.Contains(t, string(content), "ed@example.com")
	assert.Contains(t, string(content), "--------")
}

func TestFileSink_FlushWithoutMessages(t *testing.T) {
	sink := &notify.FileSink{Dir: t.TempDir(), Prefix: "emails"}

	path, err := sink.Flush(time.Now())

	require.NoError(t, err)
	assert.Empty(t, path, "no file is written for an empty run")
}
