package agendah

import (
	"context"
	"strings"
	"sync/atomic"
	"time"
)

// Session carries the mutable state of one journal sitting: the month in
// view, the selected day, and the in-flight save guard. It replaces what
// used to be module-level globals; one Session belongs to one user-facing
// surface and is never shared.
type Session struct {
	store *Store

	ViewYear  int
	ViewMonth time.Month
	Selected  Date

	saving atomic.Bool

	now func() time.Time
}

// NewSession opens a session positioned on today.
func NewSession(s *Store) *Session {
	today := Today()
	return &Session{
		store:     s,
		ViewYear:  today.Year(),
		ViewMonth: today.Month(),
		Selected:  today,
		now:       time.Now,
	}
}

// Store exposes the underlying store to read-only consumers.
func (s *Session) Store() *Store { return s.store }

// Select moves the session onto a day, aligning the view month with it.
func (s *Session) Select(day Date) {
	s.Selected = day
	s.ViewYear = day.Year()
	s.ViewMonth = day.Month()
}

// PrevMonth moves the view one month back.
func (s *Session) PrevMonth() {
	d := NewDate(s.ViewYear, s.ViewMonth-1, 1)
	s.ViewYear, s.ViewMonth = d.Year(), d.Month()
}

// NextMonth moves the view one month forward.
func (s *Session) NextMonth() {
	d := NewDate(s.ViewYear, s.ViewMonth+1, 1)
	s.ViewYear, s.ViewMonth = d.Year(), d.Month()
}

// DayForm is the editable surface of one day, as collected from the entry
// form. Tags is the raw comma-separated input.
type DayForm struct {
	Anchor string
	Notes  string
	Tags   string
	Tasks  []Task
}

// AddTask appends a blank task row, honoring the soft cap. It reports
// whether the row was added.
func (f *DayForm) AddTask() bool {
	if len(NormalizeTasks(f.Tasks)) >= maxTasks {
		return false
	}
	f.Tasks = append(f.Tasks, Task{})
	return true
}

// SaveDay persists the form onto the selected day, merging over the stored
// Entry: CreatedAt and the attachment list survive, UpdatedAt is refreshed,
// tags and tasks are normalized.
//
// An overlapping save is dropped, not queued: saved is false and the store
// is untouched. The guard always releases, also on error, so the surface
// can never get stuck in a saving state.
func (s *Session) SaveDay(ctx context.Context, form DayForm) (saved bool, err error) {
	if !s.saving.CompareAndSwap(false, true) {
		return false, nil
	}
	defer s.saving.Store(false)

	now := s.now()
	prev, err := s.store.GetEntry(ctx, s.Selected)
	if err != nil {
		return false, err
	}

	e := &Entry{
		Date:        s.Selected,
		Anchor:      form.Anchor,
		Tasks:       NormalizeTasks(form.Tasks),
		Notes:       form.Notes,
		Tags:        NormalizeTags(form.Tags),
		Attachments: []string{},
		CreatedAt:   now.UnixMilli(),
		UpdatedAt:   now.UnixMilli(),
	}
	if prev != nil {
		e.Attachments = prev.Attachments
		e.CreatedAt = prev.CreatedAt
	}
	if err := s.store.PutEntry(ctx, e); err != nil {
		return false, err
	}
	return true, nil
}

// CloneYesterday returns yesterday's content as a form for the selected day,
// or nil when yesterday has no Entry. Nothing is saved; the caller edits and
// saves as usual.
func (s *Session) CloneYesterday(ctx context.Context) (*DayForm, error) {
	prev, err := s.store.GetEntry(ctx, s.Selected.Add(-1))
	if err != nil || prev == nil {
		return nil, err
	}
	form := &DayForm{
		Anchor: prev.Anchor,
		Notes:  prev.Notes,
		Tags:   strings.Join(prev.Tags, ", "),
		Tasks:  append([]Task{}, prev.Tasks...),
	}
	return form, nil
}
