package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chime/internal/domain/entity"
)

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestAddMonthsClamped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{name: "jan 31 to feb non-leap", from: utc(2025, 1, 31, 9, 0), months: 1, want: utc(2025, 2, 28, 9, 0)},
		{name: "jan 31 to feb leap", from: utc(2024, 1, 31, 9, 0), months: 1, want: utc(2024, 2, 29, 9, 0)},
		{name: "mar 31 to apr", from: utc(2025, 3, 31, 7, 15), months: 1, want: utc(2025, 4, 30, 7, 15)},
		{name: "year rollover", from: utc(2025, 11, 30, 0, 0), months: 3, want: utc(2026, 2, 28, 0, 0)},
		{name: "plain day kept", from: utc(2025, 5, 15, 12, 0), months: 2, want: utc(2025, 7, 15, 12, 0)},
		{name: "twelve months", from: utc(2024, 2, 29, 6, 0), months: 12, want: utc(2025, 2, 28, 6, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AddMonthsClamped(tt.from, tt.months))
		})
	}
}

func TestDaysIn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 31, DaysIn(2025, time.December))
	assert.Equal(t, 30, DaysIn(2025, time.November))
}

func TestAdvancer_Advance(t *testing.T) {
	t.Parallel()

	advancer := NewAdvancer(NewNormalizer("UTC"))
	dispatchedAt := utc(2025, 1, 1, 1, 1)

	tests := []struct {
		name        string
		reminder    entity.Reminder
		wantOutcome entity.ReminderOutcome
		wantFireAt  time.Time
		wantActive  bool
	}{
		{
			name:        "one-off retires",
			reminder:    entity.Reminder{FireAt: utc(2025, 1, 1, 1, 0), RepeatRule: entity.RepeatNone, RepeatEvery: 1, Active: true},
			wantOutcome: entity.OutcomeRetired,
			wantFireAt:  utc(2025, 1, 1, 1, 0),
			wantActive:  false,
		},
		{
			name:        "daily every three",
			reminder:    entity.Reminder{FireAt: utc(2025, 1, 1, 1, 0), RepeatRule: entity.RepeatDaily, RepeatEvery: 3, Active: true},
			wantOutcome: entity.OutcomeRescheduled,
			wantFireAt:  utc(2025, 1, 4, 1, 0),
			wantActive:  true,
		},
		{
			name:        "weekly shanghai",
			reminder:    entity.Reminder{FireAt: utc(2025, 1, 1, 1, 0), Timezone: "Asia/Shanghai", RepeatRule: entity.RepeatWeekly, RepeatEvery: 1, Active: true},
			wantOutcome: entity.OutcomeRescheduled,
			wantFireAt:  utc(2025, 1, 8, 1, 0),
			wantActive:  true,
		},
		{
			name:        "zero multiplier treated as one",
			reminder:    entity.Reminder{FireAt: utc(2025, 1, 1, 1, 0), RepeatRule: entity.RepeatDaily, RepeatEvery: 0, Active: true},
			wantOutcome: entity.OutcomeRescheduled,
			wantFireAt:  utc(2025, 1, 2, 1, 0),
			wantActive:  true,
		},
		{
			name: "monthly uses local calendar",
			// 2025-01-31 07:00 in Shanghai is 2025-01-30 23:00 UTC.
			reminder:    entity.Reminder{FireAt: utc(2025, 1, 30, 23, 0), Timezone: "Asia/Shanghai", RepeatRule: entity.RepeatMonthly, RepeatEvery: 1, Active: true},
			wantOutcome: entity.OutcomeRescheduled,
			wantFireAt:  utc(2025, 2, 27, 23, 0),
			wantActive:  true,
		},
		{
			name: "next past expiry retires",
			reminder: entity.Reminder{
				FireAt: utc(2025, 1, 1, 1, 0), RepeatRule: entity.RepeatWeekly, RepeatEvery: 1, Active: true,
				ExpiresAt: timePtr(utc(2025, 1, 5, 0, 0)),
			},
			wantOutcome: entity.OutcomeRetired,
			wantFireAt:  utc(2025, 1, 1, 1, 0),
			wantActive:  false,
		},
		{
			name: "next equal to expiry reschedules",
			reminder: entity.Reminder{
				FireAt: utc(2025, 1, 1, 1, 0), RepeatRule: entity.RepeatDaily, RepeatEvery: 1, Active: true,
				ExpiresAt: timePtr(utc(2025, 1, 2, 1, 0)),
			},
			wantOutcome: entity.OutcomeRescheduled,
			wantFireAt:  utc(2025, 1, 2, 1, 0),
			wantActive:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := tt.reminder
			got := advancer.Advance(&r, dispatchedAt)

			assert.Equal(t, tt.wantOutcome, got.Outcome)
			assert.Equal(t, tt.wantFireAt, r.FireAt)
			assert.Equal(t, tt.wantActive, r.Active)
			require.NotNil(t, r.LastTriggeredAt)
			assert.Equal(t, dispatchedAt, *r.LastTriggeredAt)

			if tt.wantOutcome == entity.OutcomeRescheduled {
				require.NotNil(t, got.NextFireAt)
				assert.Equal(t, tt.wantFireAt, *got.NextFireAt)
				assert.False(t, r.Triggered(), "rescheduled reminder must be due again at its new fire time")
			} else {
				assert.Nil(t, got.NextFireAt)
			}
		})
	}
}

func TestAdvancer_MonthlyLeapYear(t *testing.T) {
	t.Parallel()

	advancer := NewAdvancer(NewNormalizer("UTC"))
	r := &entity.Reminder{FireAt: utc(2024, 1, 31, 9, 0), Timezone: "UTC", RepeatRule: entity.RepeatMonthly, RepeatEvery: 1}

	next, ok := advancer.Next(r)
	require.True(t, ok)
	assert.Equal(t, utc(2024, 2, 29, 9, 0), next)
}
