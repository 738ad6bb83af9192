package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// clearCmd wipes one day's records.
type clearCmd struct {
	date string
	yes  bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete everything recorded on a day" }
func (*clearCmd) Usage() string {
	return `agh clear -y [-d <date>]

  Deletes the day's entry, attachments and cash movements. Other days are
  untouched. Requires -y.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day to clear (defaults to today).")
	f.BoolVar(&c.yes, "y", false, "Confirm the deletion.")
}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDayFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !c.yes {
		fmt.Fprintf(os.Stderr, "This deletes everything recorded on %s. Re-run with -y to confirm.\n", day)
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if err := store.ClearDay(ctx, day); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing %s: %v\n", day, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Cleared %s.\n", day)
	return subcommands.ExitSuccess
}
