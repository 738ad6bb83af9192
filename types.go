package agendah

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Caps inherited from the day form: a day keeps at most maxTasks task rows
// and maxTags tags. The report additionally renders at most maxRenderedTasks
// rows and maxThumbs attachment thumbnails per day.
const (
	maxTasks         = 6
	maxTags          = 12
	maxRenderedTasks = 12
	maxThumbs        = 12
)

// Task is one row of a day's task list. Order is significant.
type Task struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Entry is the journal record for one calendar date. The date is its key:
// there is at most one Entry per day.
//
// Attachments holds IDs of Attachment records. It is a weak reference list:
// the Entry does not own the attachments, and the store repairs dangling IDs
// lazily on read (see Store.ReconcileAttachments).
type Entry struct {
	Date        Date     `json:"date"`
	Anchor      string   `json:"anchor"`
	Tasks       []Task   `json:"tasks"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
	Attachments []string `json:"attachments"`
	CreatedAt   int64    `json:"createdAt"` // unix milliseconds, immutable after first save
	UpdatedAt   int64    `json:"updatedAt"` // unix milliseconds, refreshed on every save
}

// NewEntry returns a blank Entry for the given date.
func NewEntry(date Date, now time.Time) *Entry {
	ms := now.UnixMilli()
	return &Entry{
		Date:        date,
		Tasks:       []Task{},
		Tags:        []string{},
		Attachments: []string{},
		CreatedAt:   ms,
		UpdatedAt:   ms,
	}
}

// HasAnchor reports a non-blank anchor line.
func (e *Entry) HasAnchor() bool { return strings.TrimSpace(e.Anchor) != "" }

// HasNotes reports non-blank notes.
func (e *Entry) HasNotes() bool { return strings.TrimSpace(e.Notes) != "" }

// HasTaskText reports at least one task with non-blank text.
// Used for the calendar badge, not for the active-day count.
func (e *Entry) HasTaskText() bool {
	for _, t := range e.Tasks {
		if strings.TrimSpace(t.Text) != "" {
			return true
		}
	}
	return false
}

// IsActive reports whether the day counts as an active day: a non-blank
// anchor, non-blank notes, or a non-empty task list. The mere presence of
// task rows counts, even when every row is blank.
func (e *Entry) IsActive() bool {
	return e.HasAnchor() || e.HasNotes() || len(e.Tasks) > 0
}

// NormalizeTags splits the free-form comma separated tag input into the
// stored form: trimmed, blanks dropped, capped. Duplicates are kept;
// insertion order is preserved.
func NormalizeTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

// NormalizeTasks drops rows that carry neither text nor a done mark.
func NormalizeTasks(tasks []Task) []Task {
	out := []Task{}
	for _, t := range tasks {
		if strings.TrimSpace(t.Text) != "" || t.Done {
			out = append(out, t)
		}
	}
	return out
}

// Attachment is one uploaded file. It exclusively owns its binary payload;
// the owning Entry only references it by ID.
type Attachment struct {
	ID        string `json:"id"`
	EntryDate Date   `json:"entryDate"`
	Name      string `json:"name"`
	Type      string `json:"type"` // MIME type
	Size      int64  `json:"size"`
	Ext       string `json:"ext"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds

	// Payload is the raw file content. It never travels in a snapshot;
	// the backup codec replaces it with PayloadDataURL.
	Payload []byte `json:"-"`

	// PayloadDataURL carries the payload in a snapshot as a
	// "data:<mime>;base64,..." string. Empty outside of snapshots.
	PayloadDataURL string `json:"blobDataUrl,omitempty"`
}

// NewAttachment builds an Attachment for a file added to the given day.
func NewAttachment(date Date, name, mimeType string, payload []byte, now time.Time) *Attachment {
	if name == "" {
		name = "arquivo"
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	var ext string
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		ext = name[i+1:]
	}
	return &Attachment{
		ID:        uuid.NewString(),
		EntryDate: date,
		Name:      name,
		Type:      mimeType,
		Size:      int64(len(payload)),
		Ext:       ext,
		CreatedAt: now.UnixMilli(),
		Payload:   payload,
	}
}

// IsImage reports whether the attachment can be embedded as a thumbnail.
func (a *Attachment) IsImage() bool { return strings.HasPrefix(a.Type, "image/") }

// Kind returns the label shown on the generic document placeholder:
// the extension if known, otherwise derived from the name, otherwise "DOC".
func (a *Attachment) Kind() string {
	if a.Ext != "" {
		return strings.ToUpper(a.Ext)
	}
	if i := strings.LastIndex(a.Name, "."); i >= 0 && i < len(a.Name)-1 {
		return strings.ToUpper(a.Name[i+1:])
	}
	return "DOC"
}

// CashItem is one ledger transaction of the cashbook. It is tied to its day
// only by the EntryDate value; there is no reference from the Entry.
type CashItem struct {
	ID        string `json:"id"`
	EntryDate Date   `json:"entryDate"`
	InVal     Amount `json:"inVal"`  // credit
	OutVal    Amount `json:"outVal"` // debit
	Desc      string `json:"desc"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds, orders items within a day
}

// NewCashItem builds a CashItem for the given day.
func NewCashItem(date Date, in, out Amount, desc string, now time.Time) *CashItem {
	return &CashItem{
		ID:        uuid.NewString(),
		EntryDate: date,
		InVal:     in,
		OutVal:    out,
		Desc:      strings.TrimSpace(desc),
		CreatedAt: now.UnixMilli(),
	}
}

// IsBlank reports a cash item that carries no value and no description.
// Blank items are rejected at the boundary rather than stored.
func (c *CashItem) IsBlank() bool {
	return c.InVal.IsZero() && c.OutVal.IsZero() && c.Desc == ""
}

// TimeOfDay renders the item's creation instant as a local "15:04" label
// for the cashbook table.
func (c *CashItem) TimeOfDay() string {
	return time.UnixMilli(c.CreatedAt).Local().Format("15:04")
}
