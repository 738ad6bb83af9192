package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
)

// cloneCmd copies yesterday's content onto a day.
type cloneCmd struct {
	date string
}

func (*cloneCmd) Name() string     { return "clone" }
func (*cloneCmd) Synopsis() string { return "copy yesterday's content onto a day" }
func (*cloneCmd) Usage() string {
	return `agh clone [-d <date>]

  Copies the anchor, tasks, notes and tags of the previous day onto the
  day and saves them. Attachments and cash are not copied.
`
}

func (c *cloneCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day to clone onto (defaults to today).")
}

func (c *cloneCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	session := agendah.NewSession(store)
	session.Select(day)
	form, err := session.CloneYesterday(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", day.Add(-1), err)
		return subcommands.ExitFailure
	}
	if form == nil {
		fmt.Println("Nada registrado ontem.")
		return subcommands.ExitSuccess
	}
	if _, err := session.SaveDay(ctx, *form); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving %s: %v\n", day, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Cloned %s onto %s.\n", day.Add(-1), day)
	return subcommands.ExitSuccess
}
