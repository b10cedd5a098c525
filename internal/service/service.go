package service

import (
	"context"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/settlement"
)

// SettlementService is the single entry point that resolves a loan.
// Both triggers (customer-initiated return and the overdue sweeper)
// funnel into the same settlement path so fee and point math can never
// diverge.
type SettlementService interface {
	InitiateReturn(ctx context.Context, customerID, borrowID int64, obs settlement.Observations) (*domain.SettlementResult, error)
	RunOverdueSweep(ctx context.Context) (*domain.SweepReport, error)
}

type BorrowService interface {
	CreateBorrow(ctx context.Context, customerID, productID int64) (*domain.BorrowTransaction, error)
	ConfirmPickup(ctx context.Context, customerID, borrowID int64) (*domain.BorrowTransaction, error)
	CancelBorrow(ctx context.Context, customerID, borrowID int64) (*domain.BorrowTransaction, error)
	GetBorrow(ctx context.Context, customerID, borrowID int64) (*domain.BorrowTransaction, error)
	ListBorrows(ctx context.Context, customerID int64, state string, page, pageSize int32) ([]domain.BorrowTransaction, int32, error)
}

type WalletService interface {
	GetWallet(ctx context.Context, principalID int64, walletType domain.WalletType) (*domain.Wallet, error)
	ListEntries(ctx context.Context, principalID int64, walletType domain.WalletType, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
	TopUp(ctx context.Context, principalID int64, walletType domain.WalletType, amount int64) (*domain.Wallet, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, recipientID int64, recipientType domain.WalletType, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID int64) error
}

// EmailService failures never affect settlement outcomes; callers log
// and move on.
type EmailService interface {
	SendSettlementCompleted(ctx context.Context, email, name string, res *domain.SettlementResult) error
	SendDueReminder(ctx context.Context, email, name string, bt *domain.BorrowTransaction) error
}

// PushService delivers fire-and-forget device notifications.
type PushService interface {
	SendSettlementCompleted(ctx context.Context, deviceToken string, res *domain.SettlementResult) error
}
