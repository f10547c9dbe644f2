// Package workers contains the background jobs of the sendgate service.
package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/reachforge/sendgate/pkg/db"
)

// CleanupCounters periodically deletes daily send and warm-up counter rows
// whose date key aged out of the retention window. Day keys roll over
// implicitly, so expired rows are never read again and only take up space.
type CleanupCounters struct {
	DbConn        db.DatabaseClient
	Period        time.Duration
	RetentionDays int
}

// Run executes the cleanup on every tick until the context is canceled.
func (c *CleanupCounters) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.Period)

	glog.Info("Starting CleanupCounters worker...")
	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			return fmt.Errorf("stopped cleanup worker: %w", context.Canceled)
		case <-ticker.C:
			beforeKey := db.DateKey(time.Now().AddDate(0, 0, -c.RetentionDays))
			numDeleted, err := c.DbConn.CleanupDailyCounters(beforeKey)
			if err != nil {
				glog.Errorf("failed to cleanup expired daily counters: %v", err)
				continue
			}

			glog.Infof("deleted %d expired daily counter rows from DB", numDeleted)
		}
	}
}
