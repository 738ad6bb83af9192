package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah/renderer"
)

// dayCmd shows one day's full view: entry, attachments and cashbook.
type dayCmd struct {
	date string
}

func (*dayCmd) Name() string     { return "day" }
func (*dayCmd) Synopsis() string { return "display one day of the journal" }
func (*dayCmd) Usage() string {
	return `agh day [-d <date>]

  Displays the selected day: anchor, tasks, notes, attachments and cashbook.
  Dangling attachment references are repaired on the way.
`
}

func (c *dayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day to display (YYYY-MM-DD, defaults to today).")
}

func (c *dayCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// Reconcile repairs dangling attachment references before display.
	entry, atts, err := store.ReconcileAttachments(ctx, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading day %s: %v\n", day, err)
		return subcommands.ExitFailure
	}
	cash := store.ListCashByDate(ctx, day)

	printMarkdown(renderer.DayMarkdown(day, entry, atts, cash))
	return subcommands.ExitSuccess
}
