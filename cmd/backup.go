package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
)

// backupCmd exports the whole journal to a JSON snapshot.
type backupCmd struct {
	out string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "export the journal to a JSON file" }
func (*backupCmd) Usage() string {
	return `agh backup [-o <file>]

  Writes every entry, attachment (payload included) and cash movement to
  a single JSON snapshot.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "agendah-backup.json", "Output file.")
}

func (c *backupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	snap, err := agendah.ExportAll(ctx, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	out, err := os.Create(c.out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := agendah.EncodeSnapshot(out, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s (%d entries, %d attachments, %d cash movements).\n",
		c.out, len(snap.Entries), len(snap.Attachments), len(snap.Cash))
	return subcommands.ExitSuccess
}
