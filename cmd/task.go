package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
)

// taskCmd edits the task list of a day: add a row, or toggle one done.
type taskCmd struct {
	date string
	add  string
	done int
	undo int
}

func (*taskCmd) Name() string     { return "task" }
func (*taskCmd) Synopsis() string { return "add a task or toggle one done" }
func (*taskCmd) Usage() string {
	return `agh task [-d <date>] [-add <text>] [-done <n>] [-undone <n>]

  Edits the day's task list. -done and -undone take the 1-based position.
  A day keeps at most 6 tasks.
`
}

func (c *taskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day to edit (defaults to today).")
	f.StringVar(&c.add, "add", "", "Task text to append.")
	f.IntVar(&c.done, "done", 0, "Mark the n-th task done.")
	f.IntVar(&c.undo, "undone", 0, "Mark the n-th task not done.")
}

func (c *taskCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDayFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.add == "" && c.done == 0 && c.undo == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to do: pass -add, -done or -undone.")
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

	if c.add != "" {
		if !form.AddTask() {
			fmt.Fprintln(os.Stderr, "Já tem complementos suficientes. Mantém curto.")
			return subcommands.ExitFailure
		}
		form.Tasks[len(form.Tasks)-1].Text = c.add
	}
	for _, toggle := range []struct {
		pos  int
		done bool
	}{{c.done, true}, {c.undo, false}} {
		if toggle.pos == 0 {
			continue
		}
		if toggle.pos < 1 || toggle.pos > len(form.Tasks) {
			fmt.Fprintf(os.Stderr, "No task at position %d.\n", toggle.pos)
			return subcommands.ExitUsageError
		}
		form.Tasks[toggle.pos-1].Done = toggle.done
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
