package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
)

// saveCmd writes the day form fields: anchor, notes, tags. Unset flags keep
// the stored value; tasks are edited with the task subcommand.
type saveCmd struct {
	date   string
	anchor string
	notes  string
	tags   string
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "save anchor, notes or tags of a day" }
func (*saveCmd) Usage() string {
	return `agh save [-d <date>] [-anchor <text>] [-notes <text>] [-tags <a, b, c>]

  Saves the day form. Flags that are not set keep the stored value, so
  "agh save -anchor 'fechar proposta'" edits only the anchor.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day to save (defaults to today).")
	f.StringVar(&c.anchor, "anchor", "\x00", "One-line priority of the day.")
	f.StringVar(&c.notes, "notes", "\x00", "Free notes of the day.")
	f.StringVar(&c.tags, "tags", "\x00", "Comma separated tags, at most 12.")
}

func (c *saveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	form, err := currentForm(ctx, store, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading day %s: %v\n", day, err)
		return subcommands.ExitFailure
	}
	// "\x00" marks a flag the user did not set.
	if c.anchor != "\x00" {
		form.Anchor = c.anchor
	}
	if c.notes != "\x00" {
		form.Notes = c.notes
	}
	if c.tags != "\x00" {
		form.Tags = c.tags
	}

	saved, err := session.SaveDay(ctx, form)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving day %s: %v\n", day, err)
		return subcommands.ExitFailure
	}
	if !saved {
		fmt.Fprintln(os.Stderr, "A save is already in progress; nothing written.")
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved %s.\n", day)
	return subcommands.ExitSuccess
}

// currentForm loads the stored Entry of a day as an editable form.
func currentForm(ctx context.Context, store *agendah.Store, day agendah.Date) (agendah.DayForm, error) {
	var form agendah.DayForm
	e, err := store.GetEntry(ctx, day)
	if err != nil {
		return form, err
	}
	if e == nil {
		return form, nil
	}
	form.Anchor = e.Anchor
	form.Notes = e.Notes
	form.Tags = joinTags(e.Tags)
	form.Tasks = append([]agendah.Task{}, e.Tasks...)
	return form, nil
}
