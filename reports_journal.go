package agendah

import (
	"context"
	"time"
)

// JournalReport is the structured document assembled for a date range:
// one cover with summary stats and recurring keywords, then one page per
// day that has an Entry. The renderer turns it into a self-contained
// printable HTML document.
//
// For a fixed store the report is deterministic except for GeneratedAt.
type JournalReport struct {
	Title  string
	Period Range

	// Cover statistics, computed over the report range.
	AnchorCount int
	ActiveDays  int
	FileCount   int // attachments in range

	Keywords []Keyword

	Days []DayPage

	GeneratedAt time.Time
}

// DayPage is one printable page of the report.
type DayPage struct {
	Date   Date
	Label  string // pt-BR long form of the date

	Anchor string
	Tasks  []Task // capped at maxRenderedTasks; may be empty, never omitted
	Notes  string
	Thumbs []Thumb
	Cash   []CashRow
	Tags   []string
}

// Thumb is one attachment slot on a day page. Images with a payload carry an
// inline DataURL; everything else renders as a generic document placeholder
// labeled with Kind.
type Thumb struct {
	Name    string
	DataURL string // empty for non-image or payload-less attachments
	Kind    string // placeholder label, e.g. "PDF"
}

// CashRow is one formatted line of a day's cashbook table. In and Out are
// already rendered ("R$ 1234,56"); a zero amount is the empty string.
type CashRow struct {
	Time string
	Desc string
	In   string
	Out  string
}

// NewJournalReport gathers entries, attachments and cash items of the
// half-open range [period.From, period.To) and assembles the report.
func NewJournalReport(ctx context.Context, s *Store, title string, period Range) *JournalReport {
	entries := s.ListEntriesInRange(ctx, period)
	atts := s.ListAttachmentsInRange(ctx, period)
	cash := s.ListCashInRange(ctx, period)

	r := &JournalReport{
		Title:       title,
		Period:      period,
		FileCount:   len(atts),
		Keywords:    ExtractKeywords(EntryText(entries)),
		GeneratedAt: time.Now(),
	}

	for _, e := range entries {
		if e.HasAnchor() {
			r.AnchorCount++
		}
		if e.IsActive() {
			r.ActiveDays++
		}
	}

	attsByDate := make(map[Date][]Attachment)
	for _, a := range atts {
		attsByDate[a.EntryDate] = append(attsByDate[a.EntryDate], a)
	}
	cashByDate := make(map[Date][]CashItem)
	for _, c := range cash {
		cashByDate[c.EntryDate] = append(cashByDate[c.EntryDate], c)
	}

	for _, e := range entries {
		r.Days = append(r.Days, buildDayPage(e, attsByDate[e.Date], cashByDate[e.Date]))
	}
	return r
}

func buildDayPage(e Entry, atts []Attachment, cash []CashItem) DayPage {
	page := DayPage{
		Date:   e.Date,
		Label:  e.Date.LongLabel(),
		Anchor: e.Anchor,
		Notes:  e.Notes,
		Tags:   e.Tags,
	}

	page.Tasks = e.Tasks
	if len(page.Tasks) > maxRenderedTasks {
		page.Tasks = page.Tasks[:maxRenderedTasks]
	}

	if len(atts) > maxThumbs {
		atts = atts[:maxThumbs]
	}
	for _, a := range atts {
		page.Thumbs = append(page.Thumbs, newThumb(&a))
	}

	for _, c := range cash {
		page.Cash = append(page.Cash, CashRow{
			Time: c.TimeOfDay(),
			Desc: c.Desc,
			In:   c.InVal.String(),
			Out:  c.OutVal.String(),
		})
	}
	return page
}
