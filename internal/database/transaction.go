package database

import (
	"context"

	"gorm.io/gorm"
)

// WithTransaction runs fn against a transaction bound to ctx. The
// transaction commits when fn returns nil and rolls back when fn returns an
// error or panics; fn's error is returned unchanged.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) error {
	return db.Session(ctx).Transaction(fn)
}
