package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/chessinsight/internal/logger"
)

// tx runs fn in a transaction, rolling back when it returns an error.
func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	t, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(t); err != nil {
		_ = t.Rollback()
		log.Debug("transaction rolled back: %v", err)
		return err
	}
	if err := t.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	return nil
}
