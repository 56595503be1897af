package schedule

import (
	"github.com/google/uuid"

	"chime/internal/domain/entity"
)

// ReconcilePlan lists the writes that turn a task's stored reminders into a submitted set.
type ReconcilePlan struct {
	Create []*entity.Reminder
	Update []*entity.Reminder
	Delete []*entity.Reminder
}

// Empty reports whether the plan has nothing to write.
func (p *ReconcilePlan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// PlanReconciliation matches drafts against existing reminders of taskID.
//
// Drafts carrying an id claim the existing row with that id. Remaining drafts
// match, first come first served, an unclaimed row whose id no draft names and
// whose fingerprint is equal. Matched rows are updated in place and keep their
// trigger history; unmatched drafts become new rows and unmatched rows are deleted.
// The fingerprint pass is a linear scan per draft, quadratic in the worst case.
func PlanReconciliation(taskID uuid.UUID, existing []*entity.Reminder, drafts []entity.ReminderDraft) ReconcilePlan {
	byID := make(map[uuid.UUID]*entity.Reminder, len(existing))
	for _, r := range existing {
		byID[r.ID] = r
	}

	named := make(map[uuid.UUID]struct{}, len(drafts))
	for i := range drafts {
		if drafts[i].ID != nil {
			named[*drafts[i].ID] = struct{}{}
		}
	}

	claimed := make(map[uuid.UUID]struct{}, len(existing))
	matches := make([]*entity.Reminder, len(drafts))

	for i := range drafts {
		id := drafts[i].ID
		if id == nil {
			continue
		}
		if r, ok := byID[*id]; ok {
			if _, taken := claimed[r.ID]; !taken {
				matches[i] = r
				claimed[r.ID] = struct{}{}
			}
		}
	}

	for i := range drafts {
		if matches[i] != nil {
			continue
		}
		fp := drafts[i].Fingerprint()
		for _, r := range existing {
			if _, taken := claimed[r.ID]; taken {
				continue
			}
			if _, reserved := named[r.ID]; reserved {
				continue
			}
			if r.Fingerprint() == fp {
				matches[i] = r
				claimed[r.ID] = struct{}{}

				break
			}
		}
	}

	var plan ReconcilePlan
	for i := range drafts {
		if r := matches[i]; r != nil {
			drafts[i].ApplyTo(r)
			plan.Update = append(plan.Update, r)

			continue
		}

		created := &entity.Reminder{TaskID: taskID}
		drafts[i].ApplyTo(created)
		plan.Create = append(plan.Create, created)
	}

	for _, r := range existing {
		if _, ok := claimed[r.ID]; !ok {
			plan.Delete = append(plan.Delete, r)
		}
	}

	return plan
}
