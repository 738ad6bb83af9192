package agendah

import (
	"context"
	"time"
)

// Hint texts shown with the weekly summary, tiered on exact thresholds:
// zero anchors, fewer than three active days, otherwise continuity.
const (
	hintWriteAnchor = "Dica: escreva uma Âncora de 1 linha. Amanhã você agradece."
	hintKeepStreak  = "Boa! Agora mantém o “registro mínimo” por 3 dias seguidos."
	hintContinuity  = "Você está construindo continuidade. O sistema está segurando a memória."
)

// WeeklySummary is the rolling-window KPI snapshot shown next to the
// calendar: activity over the trailing 7 days plus the store-wide file count.
type WeeklySummary struct {
	Window Range // [today-6, today+1)

	// AnchorCount is the number of window entries with a non-blank anchor.
	AnchorCount int

	// ActiveDays counts window entries that qualify as active days
	// (see Entry.IsActive).
	ActiveDays int

	// FileCount is the total number of attachment records in the whole
	// store, not restricted to the window.
	FileCount int

	// Hint is the tiered coaching line derived from the counts.
	Hint string
}

// NewWeeklySummary computes the KPI snapshot for the 7-day inclusive window
// ending on today.
func NewWeeklySummary(ctx context.Context, s *Store, today Date) *WeeklySummary {
	window := TrailingWeek(today)
	sum := &WeeklySummary{Window: window}

	for _, e := range s.ListEntriesInRange(ctx, window) {
		if e.HasAnchor() {
			sum.AnchorCount++
		}
		if e.IsActive() {
			sum.ActiveDays++
		}
	}
	sum.FileCount = s.CountAttachments(ctx)

	switch {
	case sum.AnchorCount == 0:
		sum.Hint = hintWriteAnchor
	case sum.ActiveDays < 3:
		sum.Hint = hintKeepStreak
	default:
		sum.Hint = hintContinuity
	}
	return sum
}

// DayBadges are the per-day presence flags of the month calendar.
type DayBadges struct {
	Date      Date
	HasAnchor bool
	HasTasks  bool // at least one task with non-blank text
	HasNotes  bool
	HasFiles  bool
}

// MonthSummary is the month-bucketed aggregation feeding the calendar view.
type MonthSummary struct {
	Year  int
	Month time.Month
	Title string
	Days  []DayBadges // one per entry of the month, date ascending
}

// NewMonthSummary aggregates one calendar month.
func NewMonthSummary(ctx context.Context, s *Store, year int, month time.Month) *MonthSummary {
	m := &MonthSummary{Year: year, Month: month, Title: MonthTitle(year, month)}
	for _, e := range s.ListEntriesByMonth(ctx, year, month) {
		m.Days = append(m.Days, DayBadges{
			Date:      e.Date,
			HasAnchor: e.HasAnchor(),
			HasTasks:  e.HasTaskText(),
			HasNotes:  e.HasNotes(),
			HasFiles:  len(e.Attachments) > 0,
		})
	}
	return m
}
