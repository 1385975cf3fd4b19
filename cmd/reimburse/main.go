/*
main.go - One-shot calculation from the command line

PURPOSE:
  Runs a single reimbursement calculation and prints the display report.
  Useful for checking a period before sending anything, or for cron-driven
  exports without the HTTP service.

FLAGS:
  -date       Reference date, YYYY-MM-DD (default: today)
  -workbook   Roster workbook path (overrides WORKBOOK_PATH)
  -export     Print the delimited export form instead of the display form
  -emails     Also write the emails file for the run

EXAMPLES:
  # Report for the period containing 15 March 2024
  ./reimburse -date=2024-03-15

  # Export form, piped into a file
  ./reimburse -date=2024-03-15 -export > q1.csv
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/phoenix/reimburse-engine/config"
	"github.com/phoenix/reimburse-engine/engine"
	"github.com/phoenix/reimburse-engine/notify"
	"github.com/phoenix/reimburse-engine/store/xlsx"
)

func main() {
	date := flag.String("date", "", "reference date YYYY-MM-DD (default today)")
	workbook := flag.String("workbook", "", "roster workbook path (overrides WORKBOOK_PATH)")
	export := flag.Bool("export", false, "print the export form instead of the display form")
	emails := flag.Bool("emails", false, "also write the emails file")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel) // keep stdout clean for the report

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	if *workbook != "" {
		settings.WorkbookPath = *workbook
	}

	reference := time.Now()
	if *date != "" {
		reference, err = time.Parse("2006-01-02", *date)
		if err != nil {
			log.Fatalf("-date must be YYYY-MM-DD: %v", err)
		}
	}

	source, err := xlsx.Open(settings.WorkbookPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer source.Close()

	e := &engine.Engine{
		Source:  source,
		Cadence: settings.Cadence(),
		Rate:    settings.Rate,
		Log:     log,
	}
	result, err := e.Run(context.Background(), reference)
	if err != nil {
		log.Fatalf("calculation failed: %v", err)
	}

	lines := result.Report.Display
	if *export {
		lines = result.Report.Export
	}
	fmt.Println(strings.Join(lines, "\n"))

	if *emails {
		sink := &notify.FileSink{Dir: settings.DataDir, Prefix: settings.EmailFilePrefix}
		d := notify.Dispatcher{
			TemplatePath: settings.EmailTemplate,
			Subject:      settings.EmailSubject,
			Rate:         settings.Rate,
			Sender:       sink,
			Log:          log,
		}
		if _, err := d.Dispatch(context.Background(), result.Period.Start, result.Registry); err != nil {
			log.Fatalf("emails: %v", err)
		}
		path, err := sink.Flush(time.Now())
		if err != nil {
			log.Fatalf("emails: %v", err)
		}
		if path != "" {
			fmt.Fprintf(os.Stderr, "emails written to %s\n", path)
		}
	}
}
