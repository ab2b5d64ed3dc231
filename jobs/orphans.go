package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// OrphanSweeper is the store capability the sweep needs.
type OrphanSweeper interface {
	DeleteOrphanToDos(ctx context.Context) (int64, error)
}

// StartOrphanSweep deletes to-dos of deleted task lists every interval
// until ctx is done. Deleting a list never cascades on its own, so this
// is the only path that removes orphans.
func StartOrphanSweep(ctx context.Context, st OrphanSweeper, interval time.Duration, logger logrus.FieldLogger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				SweepOrphans(ctx, st, logger)
			}
		}
	}()
}

func SweepOrphans(ctx context.Context, st OrphanSweeper, logger logrus.FieldLogger) {
	n, err := st.DeleteOrphanToDos(ctx)
	if err != nil {
		logger.WithError(err).Error("Error deleting orphaned todos")
		return
	}
	if n > 0 {
		logger.WithField("count", n).Info("Deleted orphaned todos")
	}
}
