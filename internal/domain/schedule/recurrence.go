package schedule

import (
	"time"

	"chime/internal/domain/entity"
)

// Advancement is the result of advancing a reminder after a successful dispatch.
type Advancement struct {
	Outcome    entity.ReminderOutcome
	NextFireAt *time.Time
}

// Advancer moves dispatched reminders to their next occurrence or retires them.
type Advancer struct {
	zones *Normalizer
}

// NewAdvancer creates an Advancer doing local-calendar math through zones.
func NewAdvancer(zones *Normalizer) *Advancer {
	return &Advancer{zones: zones}
}

// Advance records the dispatch at triggeredAt on r and either reschedules it
// or makes it inactive. r is modified in place.
func (a *Advancer) Advance(r *entity.Reminder, triggeredAt time.Time) Advancement {
	triggered := triggeredAt.UTC()
	r.LastTriggeredAt = &triggered

	next, ok := a.Next(r)
	if !ok || (r.ExpiresAt != nil && next.After(*r.ExpiresAt)) {
		r.Active = false

		return Advancement{Outcome: entity.OutcomeRetired}
	}

	r.FireAt = next
	r.Active = true

	return Advancement{Outcome: entity.OutcomeRescheduled, NextFireAt: &next}
}

// Next returns the occurrence following r.FireAt. It reports false for
// non-recurring reminders.
func (a *Advancer) Next(r *entity.Reminder) (time.Time, bool) {
	every := max(r.RepeatEvery, 1)
	fireAt := r.FireAt.UTC()

	switch r.RepeatRule {
	case entity.RepeatDaily:
		return fireAt.AddDate(0, 0, every), true
	case entity.RepeatWeekly:
		return fireAt.AddDate(0, 0, 7*every), true
	case entity.RepeatMonthly:
		local := a.zones.ToLocal(fireAt, r.Timezone)

		return AddMonthsClamped(local, every).UTC(), true
	default:
		return time.Time{}, false
	}
}

// AddMonthsClamped adds months to t's calendar date in t's location, clamping
// the day to the length of the target month. The wall clock is kept.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	// Day 1 never overflows, so the target month is exact.
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day = min(day, DaysIn(first.Year(), first.Month()))

	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
