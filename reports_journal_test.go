package agendah

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalReport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	period := MonthRange(2025, time.August)

	require.NoError(t, s.PutEntry(ctx, &Entry{
		Date:   MustParseDate("2025-08-05"),
		Anchor: "fechar proposta",
		Notes:  "reunião reunião projeto projeto projeto cliente",
		Tasks:  []Task{{Text: "ligar", Done: true}},
		Tags:   []string{"trabalho"},
	}))
	require.NoError(t, s.PutEntry(ctx, &Entry{
		Date:  MustParseDate("2025-08-10"),
		Notes: "dia tranquilo",
	}))
	// Outside the period.
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: MustParseDate("2025-09-01"), Anchor: "fora"}))

	require.NoError(t, s.AddAttachment(ctx,
		NewAttachment(MustParseDate("2025-08-05"), "recibo.pdf", "application/pdf", []byte("%PDF"), time.UnixMilli(1000)),
		time.UnixMilli(1000)))
	require.NoError(t, s.PutCash(ctx,
		NewCashItem(MustParseDate("2025-08-05"), A(1234.5), A(0.0), "sinal do projeto", time.UnixMilli(1000))))

	r := NewJournalReport(ctx, s, "Agenda AH", period)

	assert.Equal(t, "Agenda AH", r.Title)
	assert.Equal(t, period, r.Period)
	assert.Equal(t, 1, r.AnchorCount)
	assert.Equal(t, 2, r.ActiveDays)
	assert.Equal(t, 1, r.FileCount)
	require.Len(t, r.Days, 2)

	assert.Equal(t, []Keyword{
		{Word: "projeto", Count: 3},
		{Word: "reunião", Count: 2},
	}, r.Keywords)

	day := r.Days[0]
	assert.Equal(t, "Terça-feira, 5 de agosto de 2025", day.Label)
	assert.Equal(t, "fechar proposta", day.Anchor)
	require.Len(t, day.Thumbs, 1)
	assert.Equal(t, "PDF", day.Thumbs[0].Kind)
	assert.Empty(t, day.Thumbs[0].DataURL, "non-images get a placeholder, not an inline image")
	require.Len(t, day.Cash, 1)
	assert.Equal(t, "R$ 1234,50", day.Cash[0].In)
	assert.Equal(t, "", day.Cash[0].Out)
	assert.Equal(t, "sinal do projeto", day.Cash[0].Desc)
}

func TestJournalReportDeterministic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	period := MonthRange(2025, time.August)

	require.NoError(t, s.PutEntry(ctx, &Entry{
		Date:   MustParseDate("2025-08-05"),
		Anchor: "fechar proposta",
		Notes:  "projeto projeto",
	}))

	a := NewJournalReport(ctx, s, "Agenda AH", period)
	b := NewJournalReport(ctx, s, "Agenda AH", period)
	a.GeneratedAt, b.GeneratedAt = time.Time{}, time.Time{}
	assert.Equal(t, a, b, "same store, same report, modulo the timestamp")
}

func TestJournalReportCaps(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	d := MustParseDate("2025-08-05")

	tasks := make([]Task, maxRenderedTasks+5)
	for i := range tasks {
		tasks[i] = Task{Text: "tarefa"}
	}
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: d, Tasks: tasks}))
	for i := 0; i < maxThumbs+3; i++ {
		require.NoError(t, s.AddAttachment(ctx,
			NewAttachment(d, "f.txt", "text/plain", []byte("x"), time.UnixMilli(int64(1000+i))),
			time.UnixMilli(int64(1000+i))))
	}

	r := NewJournalReport(ctx, s, "Agenda AH", MonthRange(2025, time.August))
	require.Len(t, r.Days, 1)
	assert.Len(t, r.Days[0].Tasks, maxRenderedTasks)
	assert.Len(t, r.Days[0].Thumbs, maxThumbs)
	// The cover counter still sees every file of the range.
	assert.Equal(t, maxThumbs+3, r.FileCount)
}

func TestJournalReportSkipsEmptyDays(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.PutEntry(ctx, &Entry{Date: MustParseDate("2025-08-05"), Anchor: "um"}))
	r := NewJournalReport(ctx, s, "Agenda AH", MonthRange(2025, time.August))

	// Only days with an Entry get a page; the other 30 days do not.
	assert.Len(t, r.Days, 1)
}

func TestNewThumb(t *testing.T) {
	pdf := NewAttachment(Today(), "doc.pdf", "application/pdf", []byte("%PDF"), time.Now())
	th := newThumb(pdf)
	assert.Equal(t, "doc.pdf", th.Name)
	assert.Equal(t, "PDF", th.Kind)
	assert.Empty(t, th.DataURL)

	// An image without a payload degrades to the placeholder as well.
	img := NewAttachment(Today(), "foto.png", "image/png", nil, time.Now())
	th = newThumb(img)
	assert.Empty(t, th.DataURL)
	assert.Equal(t, "PNG", th.Kind)

	// A corrupt image payload degrades instead of failing.
	bad := NewAttachment(Today(), "foto.png", "image/png", []byte("not an image"), time.Now())
	th = newThumb(bad)
	assert.Empty(t, th.DataURL)
}
