package repository

import (
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

// RunInTransaction runs fn with a transaction-bound handle. It commits when fn
// returns nil and rolls back when fn returns an error or panics. Every write
// of an aggregate operation must go through the handle so partial writes are
// never visible outside a successful commit.
func RunInTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin transaction", tx.Error)
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Transaction rolled back due to panic", nil, map[string]interface{}{
				"panic": r,
			})
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to commit transaction", err)
		return err
	}

	return nil
}
