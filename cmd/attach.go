package cmd

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/subcommands"
	"github.com/hfreitas/agendah"
)

// attachCmd stores files as attachments of a day, or removes one by id.
type attachCmd struct {
	date string
	rm   string
}

func (*attachCmd) Name() string     { return "attach" }
func (*attachCmd) Synopsis() string { return "attach files to a day" }
func (*attachCmd) Usage() string {
	return `agh attach [-d <date>] <file> [<file>...]
agh attach -rm <attachment-id>

  Reads each file and stores it as an attachment of the day, linked into
  the day's Entry. With -rm the attachment is deleted instead.
`
}

func (c *attachCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day to attach to (defaults to today).")
	f.StringVar(&c.rm, "rm", "", "Attachment id to remove.")
}

func (c *attachCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDayFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.rm == "" && f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "No files given.")
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if c.rm != "" {
		return c.remove(ctx, store)
	}

	for _, path := range f.Args() {
		payload, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		att := agendah.NewAttachment(day, filepath.Base(path), detectMIME(path, payload), payload, time.Now())
		if err := store.AddAttachment(ctx, att, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Error attaching %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Attached %s to %s (%s).\n", att.Name, day, att.ID)
	}
	return subcommands.ExitSuccess
}

func (c *attachCmd) remove(ctx context.Context, store *agendah.Store) subcommands.ExitStatus {
	att, err := store.GetAttachment(ctx, c.rm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading attachment: %v\n", err)
		return subcommands.ExitFailure
	}
	if att == nil {
		fmt.Fprintf(os.Stderr, "No attachment with id %q.\n", c.rm)
		return subcommands.ExitFailure
	}
	if err := store.RemoveAttachment(ctx, att.ID, att.EntryDate, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing attachment: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %s from %s.\n", att.Name, att.EntryDate)
	return subcommands.ExitSuccess
}

// detectMIME resolves the file's MIME type from its extension, falling back
// to content sniffing.
func detectMIME(path string, payload []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(payload)
}
