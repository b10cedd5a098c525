package service

import (
	"context"
	"fmt"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"

	"github.com/google/uuid"
)

type walletService struct {
	store repository.Store
}

func NewWalletService(store repository.Store) WalletService {
	return &walletService{store: store}
}

func (s *walletService) GetWallet(ctx context.Context, principalID int64, walletType domain.WalletType) (*domain.Wallet, error) {
	return s.store.Repos().Wallets.GetByPrincipal(ctx, principalID, walletType)
}

func (s *walletService) ListEntries(ctx context.Context, principalID int64, walletType domain.WalletType, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	wallet, err := s.store.Repos().Wallets.GetByPrincipal(ctx, principalID, walletType)
	if err != nil {
		return nil, 0, err
	}
	return s.store.Repos().Ledger.ListByWallet(ctx, wallet.ID, page, pageSize)
}

func (s *walletService) TopUp(ctx context.Context, principalID int64, walletType domain.WalletType, amount int64) (*domain.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: top-up amount must be positive", domain.ErrInvariantViolation)
	}

	var wallet *domain.Wallet
	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		var err error
		wallet, err = r.Wallets.GetByPrincipal(ctx, principalID, walletType)
		if err != nil {
			return err
		}
		if err := r.Wallets.AdjustBalances(ctx, wallet.ID, amount, 0); err != nil {
			return err
		}
		if err := r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      wallet.ID,
			Amount:        amount,
			Type:          domain.EntryTypeTopUp,
			Direction:     domain.DirectionIn,
			TargetBucket:  domain.BucketAvailable,
			Status:        domain.EntryStatusPosted,
			SettlementRef: uuid.NewString(),
			Description:   "Wallet top-up",
		}); err != nil {
			return err
		}
		wallet.AvailableBalance += amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}
