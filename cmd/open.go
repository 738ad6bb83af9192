package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
)

// openCmd writes an attachment's payload back to disk.
type openCmd struct {
	out string
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "export an attachment to a file" }
func (*openCmd) Usage() string {
	return `agh open [-o <path>] <attachment-id>

  Writes the attachment payload to a file, by default under the current
  directory using the stored name.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "Destination path (defaults to the stored name).")
}

func (c *openCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Expected exactly one attachment id.")
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	att, err := store.GetAttachment(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading attachment: %v\n", err)
		return subcommands.ExitFailure
	}
	if att == nil {
		fmt.Fprintf(os.Stderr, "No attachment with id %q.\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	if len(att.Payload) == 0 {
		fmt.Fprintln(os.Stderr, "Arquivo indisponível neste dispositivo.")
		return subcommands.ExitFailure
	}

	dest := c.out
	if dest == "" {
		dest = filepath.Base(att.Name)
	}
	if err := os.WriteFile(dest, att.Payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", dest, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s (%d bytes).\n", dest, len(att.Payload))
	return subcommands.ExitSuccess
}
