package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
)

// cashCmd appends one cashbook transaction to a day.
type cashCmd struct {
	date string
	in   string
	out  string
	desc string
}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "add a cashbook transaction" }
func (*cashCmd) Usage() string {
	return `agh cash [-d <date>] [-in <valor>] [-out <valor>] [-desc <texto>]

  Appends one transaction to the day's cashbook. Amounts use the pt-BR
  convention: "1.234,56". At least one of -in, -out, -desc is required.
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day of the transaction (defaults to today).")
	f.StringVar(&c.in, "in", "", "Credit amount (entrada).")
	f.StringVar(&c.out, "out", "", "Debit amount (saída).")
	f.StringVar(&c.desc, "desc", "", "Description.")
}

func (c *cashCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDayFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	in, err := agendah.ParseAmount(c.in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -in: %v\n", err)
		return subcommands.ExitUsageError
	}
	out, err := agendah.ParseAmount(c.out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -out: %v\n", err)
		return subcommands.ExitUsageError
	}

	item := agendah.NewCashItem(day, in, out, c.desc, time.Now())
	if item.IsBlank() {
		fmt.Fprintln(os.Stderr, "Preencha pelo menos um campo.")
		return subcommands.ExitUsageError
	}

	store, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if err := store.PutCash(ctx, item); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Lançamento adicionado em %s.\n", day)
	return subcommands.ExitSuccess
}
