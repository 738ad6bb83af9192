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

// summaryCmd prints the trailing-week indicators and the hint of the day.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the 7-day indicators" }
func (*summaryCmd) Usage() string {
	return `agh summary [-d <date>]

  Counts anchors and active days over the trailing seven days ending on
  the day, alongside the total file count and a habit hint.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Last day of the window (defaults to today).")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDayFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	sum := agendah.NewWeeklySummary(ctx, store, day)
	printMarkdown(renderer.SummaryMarkdown(sum))
	return subcommands.ExitSuccess
}
