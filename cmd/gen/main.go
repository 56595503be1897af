package main

import (
	"gorm.io/gen"

	"chime/internal/infra/persistence/model"
)

// Generates typed query helpers for the persistence models.
func main() {
	models := []any{
		model.TaskModel{},
		model.TaskReminderModel{},
		model.UserDeviceModel{},
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       "./internal/infra/persistence/postgres/query",
		Mode:          gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable: true,
	})

	g.ApplyBasic(models...)

	g.Execute()
}
