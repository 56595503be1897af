package entity

import (
	"time"

	"github.com/google/uuid"
)

// RepeatRule is the recurrence unit of a reminder.
type RepeatRule string

const (
	RepeatNone    RepeatRule = "none"
	RepeatDaily   RepeatRule = "daily"
	RepeatWeekly  RepeatRule = "weekly"
	RepeatMonthly RepeatRule = "monthly"
)

// IsValid checks if the RepeatRule is a known value.
func (r RepeatRule) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	default:
		return false
	}
}

// Reminder is a scheduled notification attached to a task.
type Reminder struct {
	ID              uuid.UUID  `json:"id"`                // Stable identity once persisted.
	TaskID          uuid.UUID  `json:"task_id"`           // The task owning this reminder.
	FireAt          time.Time  `json:"fire_at"`           // Next fire instant, always UTC.
	Timezone        string     `json:"timezone"`          // IANA zone for the local wall clock and month math.
	Channel         Channel    `json:"channel"`           // Delivery channel.
	RepeatRule      RepeatRule `json:"repeat_rule"`       // Recurrence unit.
	RepeatEvery     int        `json:"repeat_every"`      // Recurrence multiplier, at least 1.
	Active          bool       `json:"active"`            // Whether the reminder still participates in dispatch.
	LastTriggeredAt *time.Time `json:"last_triggered_at"` // Most recent successful dispatch, UTC.
	ExpiresAt       *time.Time `json:"expires_at"`        // Recurrence stops past this instant, UTC.
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Triggered reports whether the current fire instant has already been dispatched.
func (r *Reminder) Triggered() bool {
	return r.LastTriggeredAt != nil && !r.LastTriggeredAt.Before(r.FireAt)
}

// Expired reports whether the reminder expired before now.
func (r *Reminder) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}

// Fingerprint returns the scheduling fields used to match id-less submissions.
func (r *Reminder) Fingerprint() ReminderFingerprint {
	return ReminderFingerprint{
		FireAt:      r.FireAt.UTC().Unix(),
		Timezone:    r.Timezone,
		Channel:     r.Channel,
		RepeatRule:  r.RepeatRule,
		RepeatEvery: r.RepeatEvery,
	}
}

// ReminderFingerprint identifies a reminder by its scheduling fields.
type ReminderFingerprint struct {
	FireAt      int64
	Timezone    string
	Channel     Channel
	RepeatRule  RepeatRule
	RepeatEvery int
}

// ReminderDraft is a submitted reminder after timezone normalisation.
type ReminderDraft struct {
	ID          *uuid.UUID
	FireAt      time.Time
	Timezone    string
	Channel     Channel
	RepeatRule  RepeatRule
	RepeatEvery int
	Active      bool
	ExpiresAt   *time.Time
}

// Fingerprint returns the scheduling fields used to match existing rows.
func (d *ReminderDraft) Fingerprint() ReminderFingerprint {
	return ReminderFingerprint{
		FireAt:      d.FireAt.UTC().Unix(),
		Timezone:    d.Timezone,
		Channel:     d.Channel,
		RepeatRule:  d.RepeatRule,
		RepeatEvery: d.RepeatEvery,
	}
}

// ApplyTo copies the draft's mutable fields onto an existing reminder, keeping its history.
func (d *ReminderDraft) ApplyTo(r *Reminder) {
	r.FireAt = d.FireAt.UTC()
	r.Timezone = d.Timezone
	r.Channel = d.Channel
	r.RepeatRule = d.RepeatRule
	r.RepeatEvery = d.RepeatEvery
	r.Active = d.Active
	r.ExpiresAt = d.ExpiresAt
}

// DueReminder is a reminder selected for dispatch together with its owning task.
type DueReminder struct {
	Reminder   *Reminder
	UserID     uuid.UUID
	TaskTitle  string
	TaskStatus TaskStatus
}
