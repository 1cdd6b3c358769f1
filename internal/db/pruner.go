package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartUploadAuditPruner deletes old upload provenance rows with interval
func StartUploadAuditPruner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM uploads
                     WHERE uploaded_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to prune upload audit rows", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("pruned upload audit rows", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
