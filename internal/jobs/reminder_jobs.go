package jobs

import (
	"context"
	"time"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/logger"
)

// SendDueReminders emails customers whose active loans come due within
// the next 24 hours.
func (jr *JobRunner) SendDueReminders() {
	jr.runWithRecovery("SendDueReminders", func() {
		ctx := context.Background()

		// Find active loans due soon
		query := `
			SELECT bt.id, bt.customer_id, bt.due_date,
			       c.email, c.name as customer_name
			FROM borrow_transactions bt
			JOIN customers c ON bt.customer_id = c.id
			WHERE bt.state = 'BORROWING'
			  AND bt.due_date > $1
			  AND bt.due_date <= $2
		`

		now := time.Now()
		rows, err := jr.db.QueryContext(ctx, query, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to query loans due soon", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				borrowID     int64
				customerID   int64
				dueDate      time.Time
				email        string
				customerName string
			)

			if err := rows.Scan(&borrowID, &customerID, &dueDate, &email, &customerName); err != nil {
				logger.Error("Failed to scan loan due soon", "error", err)
				continue
			}

			bt := &domain.BorrowTransaction{ID: borrowID, CustomerID: customerID, DueDate: dueDate}
			if err := jr.services.Email.SendDueReminder(ctx, email, customerName, bt); err != nil {
				logger.Error("Failed to send due reminder email",
					"borrow_id", borrowID,
					"customer_id", customerID,
					"email", email,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent due reminder",
				"borrow_id", borrowID,
				"customer_id", customerID,
				"email", email)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating loans due soon", "error", err)
			return
		}

		logger.Info("Due reminders sent", "count", count)
	})
}
