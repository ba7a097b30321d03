package persistence

import (
	"github.com/Townsend-Lab-Yale/lift-coords/domain/run"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/database"
)

// RunStore implements run.Store using GORM.
type RunStore struct {
	database.Repository[run.Run, RunModel]
}

// NewRunStore creates a new RunStore.
func NewRunStore(db database.Database) RunStore {
	return RunStore{
		Repository: database.NewRepository[run.Run, RunModel](db, RunMapper{}, "run"),
	}
}

var _ run.Store = RunStore{}
