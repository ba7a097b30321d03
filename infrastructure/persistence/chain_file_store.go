package persistence

import (
	"context"
	"fmt"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChainFileStore implements chain.FileStore using GORM.
type ChainFileStore struct {
	database.Repository[chain.File, ChainFileModel]
	db database.Database
}

// NewChainFileStore creates a new ChainFileStore.
func NewChainFileStore(db database.Database) ChainFileStore {
	return ChainFileStore{
		Repository: database.NewRepository[chain.File, ChainFileModel](db, ChainFileMapper{}, "chain file"),
		db:         db,
	}
}

var upsertChainFile = clause.OnConflict{
	Columns:   []clause.Column{{Name: "name"}},
	DoUpdates: clause.AssignmentColumns([]string{"size", "checksum", "source", "installed_at"}),
}

// Save creates or replaces the record for a chain file.
func (s ChainFileStore) Save(ctx context.Context, f chain.File) (chain.File, error) {
	model := ChainFileMapper{}.ToModel(f)
	if err := s.DB(ctx).Clauses(upsertChainFile).Create(&model).Error; err != nil {
		return chain.File{}, fmt.Errorf("save chain file: %w", err)
	}
	return ChainFileMapper{}.ToDomain(model), nil
}

// SaveAll records several chain files atomically.
func (s ChainFileStore) SaveAll(ctx context.Context, files []chain.File) error {
	if len(files) == 0 {
		return nil
	}
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		for _, f := range files {
			model := ChainFileMapper{}.ToModel(f)
			if err := tx.Clauses(upsertChainFile).Create(&model).Error; err != nil {
				return fmt.Errorf("save chain file %s: %w", f.Name(), err)
			}
		}
		return nil
	})
}

var _ chain.FileStore = ChainFileStore{}
