package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"chime/internal/domain/entity"
	"chime/internal/domain/repository"
)

type capturedStatement struct {
	sql  string
	vars []any
}

// newDryRunDB opens gorm on the postgres dialector without connecting and
// records the SQL built for row queries.
func newDryRunDB(t *testing.T) (*gorm.DB, *capturedStatement) {
	t.Helper()

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN: "host=localhost user=chime dbname=chime sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	captured := &capturedStatement{}
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("chime:capture_sql", func(tx *gorm.DB) {
		captured.sql = tx.Statement.SQL.String()
		captured.vars = tx.Statement.Vars
	}))

	return db, captured
}

func TestReminderRepository_FindDueQuery(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewReminderRepository(db)

	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	query := repository.DueQuery{
		Now:      now,
		Window:   5 * time.Minute,
		Statuses: entity.ActionableTaskStatuses,
	}

	_, err := repo.FindDue(context.Background(), query)
	require.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)

	sql := captured.sql
	require.NotEmpty(t, sql)

	assert.Contains(t, sql, "FROM task_reminders AS r")
	assert.Contains(t, sql, "JOIN tasks AS t ON t.id = r.task_id AND t.deleted_at IS NULL")
	assert.Contains(t, sql, "r.active = $1")
	assert.Contains(t, sql, "(r.fire_at BETWEEN $2 AND $3)")
	assert.Contains(t, sql, "(r.expires_at IS NULL OR r.expires_at >= $4)")
	assert.Contains(t, sql, "(r.last_triggered_at IS NULL OR r.last_triggered_at < r.fire_at)")
	assert.Contains(t, sql, "t.status IN ($5,$6)")
	assert.Contains(t, sql, "ORDER BY r.fire_at ASC, r.id ASC")
	assert.Contains(t, sql, `FOR UPDATE OF "r" SKIP LOCKED`)

	require.Len(t, captured.vars, 6)
	assert.Equal(t, true, captured.vars[0])
	assert.Equal(t, now.Add(-5*time.Minute), captured.vars[1])
	assert.Equal(t, now.Add(5*time.Minute), captured.vars[2])
	assert.Equal(t, now, captured.vars[3])
	assert.Equal(t, string(entity.TaskStatusPending), captured.vars[4])
	assert.Equal(t, string(entity.TaskStatusInProgress), captured.vars[5])
}

func TestReminderRepository_FindDueWithoutStatusesSkipsQuery(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewReminderRepository(db)

	due, err := repo.FindDue(context.Background(), repository.DueQuery{Now: time.Now(), Window: time.Minute})
	require.NoError(t, err)

	assert.Empty(t, due)
	assert.Empty(t, captured.sql)
}
