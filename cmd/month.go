package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
	"github.com/hfreitas/agendah/renderer"
)

// monthCmd prints the month grid with per-day badges.
type monthCmd struct {
	month string
}

func (*monthCmd) Name() string     { return "month" }
func (*monthCmd) Synopsis() string { return "show the month with per-day badges" }
func (*monthCmd) Usage() string {
	return `agh month [-m <yyyy-mm>]

  Prints every day of the month, marking which days carry an anchor,
  tasks, notes, files or cash movements.
`
}

func (c *monthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to show, as yyyy-mm (defaults to the current month).")
}

func (c *monthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	year, month, err := parseMonthFlag(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	sum := agendah.NewMonthSummary(ctx, store, year, month)
	printMarkdown(renderer.MonthMarkdown(sum))
	return subcommands.ExitSuccess
}

// parseMonthFlag resolves a yyyy-mm value; empty means the current month.
func parseMonthFlag(value string) (int, time.Month, error) {
	if value == "" {
		today := agendah.Today()
		return today.Year(), today.Month(), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
