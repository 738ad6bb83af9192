package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
	"github.com/hfreitas/agendah/renderer"
)

// reportCmd builds the printable HTML report of a period.
type reportCmd struct {
	month string
	from  string
	to    string
	out   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "write the printable HTML report of a period" }
func (*reportCmd) Usage() string {
	return `agh report [-m <yyyy-mm> | -from <date> -to <date>] [-o <file>]

  Builds the cover page plus one page per day with content, and writes
  the self-contained HTML to the output file.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to report, as yyyy-mm (defaults to the current month).")
	f.StringVar(&c.from, "from", "", "First day of the period.")
	f.StringVar(&c.to, "to", "", "Last day of the period.")
	f.StringVar(&c.out, "o", "report.html", "Output file.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := c.period()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving period: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, cfg, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	report := agendah.NewJournalReport(ctx, store, cfg.Title, period)
	html, err := renderer.ReportHTML(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.out, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s (%s, %d day pages).\n", c.out, period, len(report.Days))
	return subcommands.ExitSuccess
}

// period resolves the reporting range: an explicit from/to pair wins over
// the month flag; with neither, the current month.
func (c *reportCmd) period() (agendah.Range, error) {
	if c.from != "" || c.to != "" {
		from, err := agendah.ParseDate(c.from)
		if err != nil {
			return agendah.Range{}, err
		}
		last, err := agendah.ParseDate(c.to)
		if err != nil {
			return agendah.Range{}, err
		}
		return agendah.Range{From: from, To: last.Add(1)}, nil
	}
	year, month, err := parseMonthFlag(c.month)
	if err != nil {
		return agendah.Range{}, err
	}
	return agendah.MonthRange(year, month), nil
}
