package jobs

import (
	"context"
	"time"

	"carrental-backend/internal/logger"
)

// SendOverdueReminders emails customers whose active rental is past its
// booked end date. Reminder only: no rental, booking or fee state changes
// here. Overdue charges are applied by staff at check-in.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		overdue, err := jr.store.Reports().OverdueReturns(ctx)
		if err != nil {
			logger.Error("failed to load overdue returns", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("no overdue returns")
			return
		}

		sent := 0
		for i := range overdue {
			o := &overdue[i]
			if err := jr.emailSvc.SendOverdueReminder(ctx, o.CustomerEmail, o.CustomerName, o); err != nil {
				logger.Warn("overdue reminder failed", "rental_id", o.RentalID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("overdue reminders sent", "total", len(overdue), "sent", sent)
	})
}
