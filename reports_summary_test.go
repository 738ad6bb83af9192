package agendah

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklySummaryCounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	today := MustParseDate("2025-08-29")

	// Inside the window: two anchored days, one task-only day.
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: today, Anchor: "fechar proposta"}))
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: today.Add(-3), Anchor: "revisar"}))
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: today.Add(-6), Tasks: []Task{{Text: "ligar"}}}))
	// Outside: 7 days back, and tomorrow.
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: today.Add(-7), Anchor: "velho"}))
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: today.Add(1), Anchor: "futuro"}))

	sum := NewWeeklySummary(ctx, s, today)
	assert.Equal(t, 2, sum.AnchorCount)
	assert.Equal(t, 3, sum.ActiveDays)
	assert.Equal(t, TrailingWeek(today), sum.Window)
}

func TestWeeklySummaryBlankTaskRowCountsActive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	today := MustParseDate("2025-08-29")

	// A day whose only content is one blank task row still counts as an
	// active day, though not as an anchored one.
	require.NoError(t, s.PutEntry(ctx, &Entry{
		Date:  today,
		Tasks: []Task{{Text: "", Done: false}},
	}))

	sum := NewWeeklySummary(ctx, s, today)
	assert.Equal(t, 0, sum.AnchorCount)
	assert.Equal(t, 1, sum.ActiveDays)
}

func TestWeeklySummaryFileCountIsStoreWide(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	today := MustParseDate("2025-08-29")

	// An attachment far outside the window still counts.
	old := MustParseDate("2024-01-01")
	require.NoError(t, s.AddAttachment(ctx,
		NewAttachment(old, "f.txt", "text/plain", []byte("x"), time.UnixMilli(1000)),
		time.UnixMilli(1000)))

	sum := NewWeeklySummary(ctx, s, today)
	assert.Equal(t, 1, sum.FileCount)
}

func TestWeeklySummaryHintTiers(t *testing.T) {
	ctx := context.Background()
	today := MustParseDate("2025-08-29")

	t.Run("no anchors", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.PutEntry(ctx, &Entry{Date: today, Notes: "só notas"}))
		assert.Equal(t, hintWriteAnchor, NewWeeklySummary(ctx, s, today).Hint)
	})

	t.Run("anchored but under three active days", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.PutEntry(ctx, &Entry{Date: today, Anchor: "uma"}))
		require.NoError(t, s.PutEntry(ctx, &Entry{Date: today.Add(-1), Anchor: "duas"}))
		assert.Equal(t, hintKeepStreak, NewWeeklySummary(ctx, s, today).Hint)
	})

	t.Run("continuity", func(t *testing.T) {
		s := newTestStore(t)
		for i := 0; i < 3; i++ {
			require.NoError(t, s.PutEntry(ctx, &Entry{Date: today.Add(-i), Anchor: "dia"}))
		}
		assert.Equal(t, hintContinuity, NewWeeklySummary(ctx, s, today).Hint)
	})
}

func TestMonthSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.PutEntry(ctx, &Entry{
		Date:   MustParseDate("2025-08-05"),
		Anchor: "âncora",
		Tasks:  []Task{{Text: "ligar"}},
	}))
	require.NoError(t, s.PutEntry(ctx, &Entry{
		Date:        MustParseDate("2025-08-10"),
		Notes:       "notas",
		Attachments: []string{"a1"},
	}))
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: MustParseDate("2025-09-01"), Anchor: "fora"}))

	m := NewMonthSummary(ctx, s, 2025, time.August)
	assert.Equal(t, "Agosto de 2025", m.Title)
	require.Len(t, m.Days, 2)

	first := m.Days[0]
	assert.True(t, first.HasAnchor)
	assert.True(t, first.HasTasks)
	assert.False(t, first.HasNotes)
	assert.False(t, first.HasFiles)

	second := m.Days[1]
	assert.False(t, second.HasAnchor)
	assert.True(t, second.HasNotes)
	assert.True(t, second.HasFiles)
}

func TestMonthSummaryBlankTaskRowIsNoBadge(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// The calendar badge needs task text; a blank row earns none.
	require.NoError(t, s.PutEntry(ctx, &Entry{
		Date:  MustParseDate("2025-08-05"),
		Tasks: []Task{{Text: "  "}},
	}))
	m := NewMonthSummary(ctx, s, 2025, time.August)
	require.Len(t, m.Days, 1)
	assert.False(t, m.Days[0].HasTasks)
}
