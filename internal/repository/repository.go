package repository

import (
	"context"
	"time"

	"greenloop-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type BorrowRepository interface {
	Create(ctx context.Context, bt *domain.BorrowTransaction) error
	GetByID(ctx context.Context, id int64) (*domain.BorrowTransaction, error)
	// GetByIDForUpdate locks the row for the duration of the enclosing
	// transaction; the settlement path uses it to serialize attempts on
	// the same loan.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.BorrowTransaction, error)
	Update(ctx context.Context, bt *domain.BorrowTransaction) error
	ListByCustomer(ctx context.Context, customerID int64, state string, page, pageSize int32) ([]domain.BorrowTransaction, int32, error)
	CountOpenByCustomer(ctx context.Context, customerID int64) (int32, error)
	// ListOverdueCandidates returns loans still BORROWING with
	// late_processed false whose due date is at or before the cutoff.
	ListOverdueCandidates(ctx context.Context, cutoff time.Time, limit int32) ([]domain.BorrowTransaction, error)
}

type WalletRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Wallet, error)
	GetByPrincipal(ctx context.Context, principalID int64, walletType domain.WalletType) (*domain.Wallet, error)
	// AdjustBalances applies both deltas in one guarded update. If either
	// balance would go negative the update matches no row and
	// domain.ErrInvariantViolation is returned.
	AdjustBalances(ctx context.Context, walletID int64, availableDelta, holdingDelta int64) error
}

type LedgerRepository interface {
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error
	ListByWallet(ctx context.Context, walletID int64, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
	ListByBorrow(ctx context.Context, borrowID int64) ([]domain.LedgerEntry, error)
}

type ProductRepository interface {
	GetDetail(ctx context.Context, productID int64) (*domain.ProductDetail, error)
	Update(ctx context.Context, product *domain.Product) error
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	ApplyPointDelta(ctx context.Context, customerID int64, reward, ranking, successDelta, failedDelta int32) error
}

type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	// GetByIDForUpdate locks the business row so the reward-pool
	// read-then-decrement cannot race with a concurrent settlement.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error)
	ApplySettlement(ctx context.Context, businessID int64, rewardPoolDelta int32, ecoDelta, co2Delta decimal.Decimal) error
}

type PolicyRepository interface {
	GetBorrowPolicy(ctx context.Context) (*domain.BorrowPolicy, error)
	GetRewardPolicy(ctx context.Context) (*domain.RewardPolicy, error)
	GetDamagePolicy(ctx context.Context) (*domain.DamagePolicy, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, recipientID int64, recipientType domain.WalletType, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, recipientID int64) error
}

// Repositories bundles every repository bound to one database handle,
// either the root connection or an open transaction.
type Repositories struct {
	Borrows       BorrowRepository
	Wallets       WalletRepository
	Ledger        LedgerRepository
	Products      ProductRepository
	Customers     CustomerRepository
	Businesses    BusinessRepository
	Policies      PolicyRepository
	Notifications NotificationRepository
}

// Store is the persistence entry point. ExecTx runs fn against
// repositories bound to a single database transaction; the transaction
// commits only if fn returns nil. This is the atomic scope every
// settlement and escrow movement runs in.
type Store interface {
	Repos() *Repositories
	ExecTx(ctx context.Context, fn func(r *Repositories) error) error
}
