package jobs

import (
	"context"

	"rentnest-backend/internal/logger"
)

// SyncOccupancyStatus marks PG listings with no free bed as RENTED and puts
// RENTED ones back to ACTIVE once a bed frees up.
func (jr *JobRunner) SyncOccupancyStatus() {
	jr.runWithRecovery("SyncOccupancyStatus", func(ctx context.Context) error {
		rented, reopened, err := jr.listings.SyncOccupancyStatus(ctx)
		if err != nil {
			return err
		}
		logger.Info("Synced listing occupancy", "marked_rented", rented, "reopened", reopened)
		return nil
	})
}
