package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/logger"
	"greenloop-backend/internal/repository"

	"github.com/google/uuid"
)

type borrowService struct {
	store repository.Store
}

func NewBorrowService(store repository.Store) BorrowService {
	return &borrowService{store: store}
}

// CreateBorrow reserves a unit and escrows its deposit: the amount
// leaves the customer's available balance and lands in the business's
// holding balance in the same transaction.
func (s *borrowService) CreateBorrow(ctx context.Context, customerID, productID int64) (*domain.BorrowTransaction, error) {
	var created *domain.BorrowTransaction

	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		borrowPolicy, err := r.Policies.GetBorrowPolicy(ctx)
		if err != nil {
			return err
		}

		open, err := r.Borrows.CountOpenByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if borrowPolicy.MaxConcurrentLoans > 0 && int(open) >= borrowPolicy.MaxConcurrentLoans {
			return domain.ErrLoanLimitReached
		}

		detail, err := r.Products.GetDetail(ctx, productID)
		if err != nil {
			return err
		}
		if detail.Product.Status != domain.ProductStatusAvailable {
			return domain.ErrInvalidState
		}

		customerWallet, err := r.Wallets.GetByPrincipal(ctx, customerID, domain.WalletTypeCustomer)
		if err != nil {
			return err
		}
		businessWallet, err := r.Wallets.GetByPrincipal(ctx, detail.Group.BusinessID, domain.WalletTypeBusiness)
		if err != nil {
			return err
		}

		deposit := detail.Group.DepositAmount
		ref := uuid.NewString()

		if err := r.Wallets.AdjustBalances(ctx, customerWallet.ID, -deposit, 0); err != nil {
			if errors.Is(err, domain.ErrInvariantViolation) {
				return domain.ErrInsufficientFunds
			}
			return err
		}
		if err := r.Wallets.AdjustBalances(ctx, businessWallet.ID, 0, deposit); err != nil {
			return err
		}

		now := time.Now()
		bt := &domain.BorrowTransaction{
			CustomerID:    customerID,
			BusinessID:    detail.Group.BusinessID,
			ProductID:     productID,
			DepositAmount: deposit,
			BorrowDate:    now,
			DueDate:       now.AddDate(0, 0, int(borrowPolicy.MaxBorrowDays)),
			State:         domain.BorrowStatePendingPickup,
		}
		if err := r.Borrows.Create(ctx, bt); err != nil {
			return err
		}

		if err := r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      customerWallet.ID,
			Amount:        deposit,
			Type:          domain.EntryTypeDeposit,
			Direction:     domain.DirectionOut,
			SourceBucket:  domain.BucketAvailable,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Deposit escrowed for borrow",
		}); err != nil {
			return err
		}
		if err := r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      businessWallet.ID,
			Amount:        deposit,
			Type:          domain.EntryTypeDeposit,
			Direction:     domain.DirectionIn,
			TargetBucket:  domain.BucketHolding,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Deposit held in escrow",
		}); err != nil {
			return err
		}

		detail.Product.Status = domain.ProductStatusNonAvailable
		if err := r.Products.Update(ctx, &detail.Product); err != nil {
			return err
		}

		created = bt
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, fire and forget; a failed notification never undoes
	// the escrow.
	note := &domain.Notification{
		RecipientID:   customerID,
		RecipientType: domain.WalletTypeCustomer,
		Title:         "Borrow created",
		Message:       fmt.Sprintf("Borrow #%d reserved; return by %s", created.ID, created.DueDate.Format("Jan 2, 2006")),
		Attributes: map[string]string{
			"type":      "BORROW_CREATED",
			"borrow_id": fmt.Sprintf("%d", created.ID),
		},
	}
	if err := s.store.Repos().Notifications.Create(ctx, note); err != nil {
		logger.Error("Failed to record borrow notification", "borrow_id", created.ID, "error", err)
	}

	return created, nil
}

func (s *borrowService) ConfirmPickup(ctx context.Context, customerID, borrowID int64) (*domain.BorrowTransaction, error) {
	var bt *domain.BorrowTransaction

	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		var err error
		bt, err = r.Borrows.GetByIDForUpdate(ctx, borrowID)
		if err != nil {
			return err
		}
		if bt.CustomerID != customerID {
			return domain.ErrUnauthorized
		}
		if bt.State != domain.BorrowStatePendingPickup {
			return domain.ErrInvalidState
		}
		bt.State = domain.BorrowStateBorrowing
		return r.Borrows.Update(ctx, bt)
	})
	if err != nil {
		return nil, err
	}
	return bt, nil
}

// CancelBorrow unwinds a reservation that was never picked up. The
// escrow reverses in full and the unit returns to the pool.
func (s *borrowService) CancelBorrow(ctx context.Context, customerID, borrowID int64) (*domain.BorrowTransaction, error) {
	var bt *domain.BorrowTransaction

	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		var err error
		bt, err = r.Borrows.GetByIDForUpdate(ctx, borrowID)
		if err != nil {
			return err
		}
		if customerID != 0 && bt.CustomerID != customerID {
			return domain.ErrUnauthorized
		}
		if bt.State != domain.BorrowStatePendingPickup {
			return domain.ErrInvalidState
		}

		customerWallet, err := r.Wallets.GetByPrincipal(ctx, bt.CustomerID, domain.WalletTypeCustomer)
		if err != nil {
			return err
		}
		businessWallet, err := r.Wallets.GetByPrincipal(ctx, bt.BusinessID, domain.WalletTypeBusiness)
		if err != nil {
			return err
		}

		ref := uuid.NewString()
		if err := r.Wallets.AdjustBalances(ctx, businessWallet.ID, 0, -bt.DepositAmount); err != nil {
			return err
		}
		if err := r.Wallets.AdjustBalances(ctx, customerWallet.ID, bt.DepositAmount, 0); err != nil {
			return err
		}
		if err := r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      businessWallet.ID,
			Amount:        bt.DepositAmount,
			Type:          domain.EntryTypeRefund,
			Direction:     domain.DirectionOut,
			SourceBucket:  domain.BucketHolding,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Escrow released on cancellation",
		}); err != nil {
			return err
		}
		if err := r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      customerWallet.ID,
			Amount:        bt.DepositAmount,
			Type:          domain.EntryTypeRefund,
			Direction:     domain.DirectionIn,
			TargetBucket:  domain.BucketAvailable,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Deposit returned on cancellation",
		}); err != nil {
			return err
		}

		detail, err := r.Products.GetDetail(ctx, bt.ProductID)
		if err != nil {
			return err
		}
		detail.Product.Status = domain.ProductStatusAvailable
		if err := r.Products.Update(ctx, &detail.Product); err != nil {
			return err
		}

		bt.State = domain.BorrowStateCancelled
		return r.Borrows.Update(ctx, bt)
	})
	if err != nil {
		return nil, err
	}
	return bt, nil
}

func (s *borrowService) GetBorrow(ctx context.Context, customerID, borrowID int64) (*domain.BorrowTransaction, error) {
	bt, err := s.store.Repos().Borrows.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if customerID != 0 && bt.CustomerID != customerID {
		return nil, domain.ErrUnauthorized
	}
	return bt, nil
}

func (s *borrowService) ListBorrows(ctx context.Context, customerID int64, state string, page, pageSize int32) ([]domain.BorrowTransaction, int32, error) {
	return s.store.Repos().Borrows.ListByCustomer(ctx, customerID, state, page, pageSize)
}
