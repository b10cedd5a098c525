package jobs

import (
	"context"

	"greenloop-backend/internal/logger"
)

// SweepOverdueLoans settles loans that were never returned within the
// tolerated late window, forfeiting their deposits.
func (jr *JobRunner) SweepOverdueLoans() {
	jr.runWithRecovery("SweepOverdueLoans", func() {
		ctx := context.Background()

		report, err := jr.services.Settlement.RunOverdueSweep(ctx)
		if err != nil {
			logger.Error("Overdue sweep failed", "error", err)
			return
		}

		logger.Info("Swept overdue loans",
			"processed", report.ProcessedCount,
			"forfeited", report.ForfeitedCount,
			"failed", report.FailedCount)
	})
}
