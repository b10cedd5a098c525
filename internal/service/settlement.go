package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/logger"
	"greenloop-backend/internal/repository"
	"greenloop-backend/internal/settlement"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sweepBatchSize bounds how many loans one sweep cycle picks up; the
// next cycle drains the remainder.
const sweepBatchSize = 500

// errNotYetForfeitable is returned when a sweep candidate turns out to
// be inside the tolerated window on re-read; the sweep skips it.
var errNotYetForfeitable = errors.New("loan not yet past forfeiture threshold")

type settlementService struct {
	store    repository.Store
	emailSvc EmailService
	pushSvc  PushService
	lateUnit time.Duration
}

func NewSettlementService(store repository.Store, emailSvc EmailService, pushSvc PushService, lateUnit time.Duration) SettlementService {
	return &settlementService{
		store:    store,
		emailSvc: emailSvc,
		pushSvc:  pushSvc,
		lateUnit: lateUnit,
	}
}

// InitiateReturn settles a loan on inspection of the returned unit.
// The damage verdict and lateness classification together pick the
// outcome: a damaged unit or a hopelessly late one forfeits the whole
// deposit, a tolerably late one splits it, an on-time good one refunds
// it in full.
func (s *settlementService) InitiateReturn(ctx context.Context, customerID, borrowID int64, obs settlement.Observations) (*domain.SettlementResult, error) {
	var result *domain.SettlementResult
	var customer *domain.Customer
	var business *domain.Business

	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		bt, err := r.Borrows.GetByIDForUpdate(ctx, borrowID)
		if err != nil {
			return err
		}
		if customerID != 0 && bt.CustomerID != customerID {
			return domain.ErrUnauthorized
		}
		if err := requireBorrowing(bt); err != nil {
			return err
		}

		borrowPolicy, err := r.Policies.GetBorrowPolicy(ctx)
		if err != nil {
			return err
		}
		rewardPolicy, err := r.Policies.GetRewardPolicy(ctx)
		if err != nil {
			return err
		}
		damagePolicy, err := r.Policies.GetDamagePolicy(ctx)
		if err != nil {
			return err
		}

		assessment := settlement.AssessDamage(obs, *damagePolicy)
		lateRes := settlement.CalculateLateFee(bt.DueDate, time.Now(), bt.DepositAmount, *borrowPolicy, s.lateUnit)

		condition := domain.ProductConditionGood
		var outcome domain.SettlementOutcome
		switch {
		case assessment.Verdict == settlement.VerdictDamaged:
			condition = domain.ProductConditionDamaged
			outcome = domain.OutcomeRejected
			lateRes.Fee = bt.DepositAmount
			lateRes.Refund = 0
		case lateRes.Class == settlement.LateClassForfeit:
			outcome = domain.OutcomeRejected
		case lateRes.Class == settlement.LateClassLate:
			outcome = domain.OutcomeReturnLate
		default:
			outcome = domain.OutcomeReturned
		}

		result, customer, business, err = s.apply(ctx, r, bt, *rewardPolicy, applyInput{
			outcome:      outcome,
			condition:    condition,
			damagePoints: assessment.Points,
			lateUnits:    lateRes.LateUnits,
			fee:          lateRes.Fee,
			refund:       lateRes.Refund,
			sweepDriven:  false,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifySettlement(ctx, result, customer, business)
	return result, nil
}

// RunOverdueSweep finds loans past the forfeiture threshold and
// settles each as lost, exactly once. Per-loan failures are logged and
// skipped; the sweep never aborts wholesale.
func (s *settlementService) RunOverdueSweep(ctx context.Context) (*domain.SweepReport, error) {
	borrowPolicy, err := s.store.Repos().Policies.GetBorrowPolicy(ctx)
	if err != nil {
		return nil, err
	}

	// lateUnits > max means now-due >= (max+1) units.
	cutoff := time.Now().Add(-time.Duration(borrowPolicy.MaxLateUnits+1) * s.lateUnit)
	candidates, err := s.store.Repos().Borrows.ListOverdueCandidates(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return nil, err
	}

	report := &domain.SweepReport{}
	for _, candidate := range candidates {
		report.ProcessedCount++
		result, customer, business, err := s.settleForfeiture(ctx, candidate.ID)
		switch {
		case errors.Is(err, domain.ErrAlreadySettled), errors.Is(err, errNotYetForfeitable):
			// Another path got there first, or the loan slipped back
			// under the threshold between listing and locking.
			continue
		case err != nil:
			report.FailedCount++
			logger.Error("Overdue settlement failed", "borrow_id", candidate.ID, "error", err)
			continue
		}
		report.ForfeitedCount++
		s.notifySettlement(ctx, result, customer, business)
	}

	logger.Info("Overdue sweep completed",
		"processed", report.ProcessedCount,
		"forfeited", report.ForfeitedCount,
		"failed", report.FailedCount)
	return report, nil
}

func (s *settlementService) settleForfeiture(ctx context.Context, borrowID int64) (*domain.SettlementResult, *domain.Customer, *domain.Business, error) {
	var result *domain.SettlementResult
	var customer *domain.Customer
	var business *domain.Business

	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		bt, err := r.Borrows.GetByIDForUpdate(ctx, borrowID)
		if err != nil {
			return err
		}
		if err := requireBorrowing(bt); err != nil {
			return err
		}
		if bt.LateProcessed {
			return domain.ErrAlreadySettled
		}

		borrowPolicy, err := r.Policies.GetBorrowPolicy(ctx)
		if err != nil {
			return err
		}
		rewardPolicy, err := r.Policies.GetRewardPolicy(ctx)
		if err != nil {
			return err
		}

		// Re-classify under the lock; the candidate list may be stale.
		lateRes := settlement.CalculateLateFee(bt.DueDate, time.Now(), bt.DepositAmount, *borrowPolicy, s.lateUnit)
		if lateRes.Class != settlement.LateClassForfeit {
			return errNotYetForfeitable
		}

		result, customer, business, err = s.apply(ctx, r, bt, *rewardPolicy, applyInput{
			outcome:     domain.OutcomeLost,
			condition:   domain.ProductConditionLost,
			lateUnits:   lateRes.LateUnits,
			fee:         bt.DepositAmount,
			refund:      0,
			sweepDriven: true,
		})
		return err
	})
	return result, customer, business, err
}

type applyInput struct {
	outcome      domain.SettlementOutcome
	condition    domain.ProductCondition
	damagePoints int
	lateUnits    int64
	fee          int64
	refund       int64
	sweepDriven  bool
}

// apply performs the five-step atomic settlement write: fund movement,
// product update, point accounting, sustainability counters and the
// terminal state stamp. It must only run inside ExecTx.
func (s *settlementService) apply(ctx context.Context, r *repository.Repositories, bt *domain.BorrowTransaction, rewardPolicy domain.RewardPolicy, in applyInput) (*domain.SettlementResult, *domain.Customer, *domain.Business, error) {
	detail, err := r.Products.GetDetail(ctx, bt.ProductID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load product: %w", err)
	}
	customer, err := r.Customers.GetByID(ctx, bt.CustomerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load customer: %w", err)
	}
	business, err := r.Businesses.GetByIDForUpdate(ctx, bt.BusinessID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load business: %w", err)
	}
	customerWallet, err := r.Wallets.GetByPrincipal(ctx, bt.CustomerID, domain.WalletTypeCustomer)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load customer wallet: %w", err)
	}
	businessWallet, err := r.Wallets.GetByPrincipal(ctx, bt.BusinessID, domain.WalletTypeBusiness)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load business wallet: %w", err)
	}

	ref := uuid.NewString()
	if err := s.moveFunds(ctx, r, bt, customerWallet, businessWallet, in.fee, in.refund, ref); err != nil {
		return nil, nil, nil, err
	}

	if err := s.updateProduct(ctx, r, detail, in.condition); err != nil {
		return nil, nil, nil, err
	}

	delta := settlement.AccountPoints(in.outcome, rewardPolicy, business.RewardPoints)
	if err := r.Customers.ApplyPointDelta(ctx, bt.CustomerID, delta.Reward, delta.Ranking, delta.SuccessDelta, delta.FailedDelta); err != nil {
		return nil, nil, nil, err
	}

	impact := settlement.CalculateEcoImpact(detail.Size.PlasticWeightGrams, detail.Material.Co2EmissionPerKg)
	ecoDelta := decimal.Zero
	co2Delta := impact.Co2Reduced
	if in.outcome == domain.OutcomeReturned || in.outcome == domain.OutcomeReturnLate {
		ecoDelta = impact.EcoPoints
	} else {
		// A lost or rejected unit failed to displace its single-use
		// equivalent; the avoided-CO2 credit is taken back.
		co2Delta = impact.Co2Reduced.Neg()
	}
	if err := r.Businesses.ApplySettlement(ctx, bt.BusinessID, -delta.Reward, ecoDelta, co2Delta); err != nil {
		return nil, nil, nil, err
	}

	bt.State = in.outcome.State()
	bt.RewardPointChanged = delta.Reward
	bt.RankingPointChanged = delta.Ranking
	bt.EcoPointChanged = ecoDelta
	bt.Co2Changed = co2Delta
	if in.sweepDriven {
		bt.LateProcessed = true
	}
	if err := r.Borrows.Update(ctx, bt); err != nil {
		return nil, nil, nil, err
	}

	result := &domain.SettlementResult{
		Transaction:   bt,
		Outcome:       in.outcome,
		Condition:     in.condition,
		DamagePoints:  in.damagePoints,
		LateUnits:     in.lateUnits,
		Fee:           in.fee,
		Refund:        in.refund,
		RewardPoints:  delta.Reward,
		RankingPoints: delta.Ranking,
		EcoPoints:     ecoDelta,
		Co2Reduced:    co2Delta,
		SettlementRef: ref,
	}
	return result, customer, business, nil
}

// moveFunds resolves the escrowed deposit. Ordering is fixed: the
// source-side (business holding) debit posts before any credit.
func (s *settlementService) moveFunds(ctx context.Context, r *repository.Repositories, bt *domain.BorrowTransaction, customerWallet, businessWallet *domain.Wallet, fee, refund int64, ref string) error {
	deposit := bt.DepositAmount

	switch {
	case refund == deposit:
		// Full refund: escrow released back to the customer untouched.
		if err := r.Wallets.AdjustBalances(ctx, businessWallet.ID, 0, -deposit); err != nil {
			return err
		}
		if err := r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      businessWallet.ID,
			Amount:        deposit,
			Type:          domain.EntryTypeRefund,
			Direction:     domain.DirectionOut,
			SourceBucket:  domain.BucketHolding,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Deposit released on return",
		}); err != nil {
			return err
		}
		if err := r.Wallets.AdjustBalances(ctx, customerWallet.ID, deposit, 0); err != nil {
			return err
		}
		return r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      customerWallet.ID,
			Amount:        deposit,
			Type:          domain.EntryTypeRefund,
			Direction:     domain.DirectionIn,
			TargetBucket:  domain.BucketAvailable,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Deposit refunded",
		})

	case refund > 0:
		// Partial refund: late fee becomes business income, the
		// remainder goes back to the customer.
		if err := r.Wallets.AdjustBalances(ctx, businessWallet.ID, fee, -deposit); err != nil {
			return err
		}
		if err := r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      businessWallet.ID,
			Amount:        fee,
			Type:          domain.EntryTypePenalty,
			Direction:     domain.DirectionIn,
			SourceBucket:  domain.BucketHolding,
			TargetBucket:  domain.BucketAvailable,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Late fee collected",
		}); err != nil {
			return err
		}
		if err := r.Wallets.AdjustBalances(ctx, customerWallet.ID, refund, 0); err != nil {
			return err
		}
		return r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      customerWallet.ID,
			Amount:        refund,
			Type:          domain.EntryTypePenalty,
			Direction:     domain.DirectionIn,
			TargetBucket:  domain.BucketAvailable,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Deposit refunded less late fee",
		})

	default:
		// Full forfeiture: one intra-wallet transfer, holding to
		// available, on the business side.
		if err := r.Wallets.AdjustBalances(ctx, businessWallet.ID, deposit, -deposit); err != nil {
			return err
		}
		return r.Ledger.CreateEntry(ctx, &domain.LedgerEntry{
			WalletID:      businessWallet.ID,
			Amount:        deposit,
			Type:          domain.EntryTypeForfeiture,
			Direction:     domain.DirectionIn,
			SourceBucket:  domain.BucketHolding,
			TargetBucket:  domain.BucketAvailable,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &bt.ID,
			SettlementRef: ref,
			Description:   "Deposit forfeited",
		})
	}
}

func (s *settlementService) updateProduct(ctx context.Context, r *repository.Repositories, detail *domain.ProductDetail, condition domain.ProductCondition) error {
	product := &detail.Product
	switch condition {
	case domain.ProductConditionGood:
		product.ReuseCount++
		product.Condition = domain.ProductConditionGood
		product.Status = domain.ProductStatusAvailable
		if product.ReuseCount >= detail.Material.ReuseLimit {
			// Unit completed its last cycle; retire it.
			product.Condition = domain.ProductConditionExpired
			product.Status = domain.ProductStatusNonAvailable
		}
	default:
		// Damaged and lost units never return to the pool.
		product.Condition = condition
		product.Status = domain.ProductStatusNonAvailable
	}
	return r.Products.Update(ctx, product)
}

func requireBorrowing(bt *domain.BorrowTransaction) error {
	if bt.State == domain.BorrowStateBorrowing {
		return nil
	}
	if bt.State.IsTerminal() {
		return domain.ErrAlreadySettled
	}
	return domain.ErrInvalidState
}

// notifySettlement fans out fire-and-forget notifications. Failures
// here are logged only; the settlement has already committed.
func (s *settlementService) notifySettlement(ctx context.Context, res *domain.SettlementResult, customer *domain.Customer, business *domain.Business) {
	if res == nil || customer == nil {
		return
	}

	note := &domain.Notification{
		RecipientID:   customer.ID,
		RecipientType: domain.WalletTypeCustomer,
		Title:         "Return settled",
		Message:       fmt.Sprintf("Your borrow #%d settled as %s", res.Transaction.ID, res.Outcome),
		Attributes: map[string]string{
			"type":      "SETTLEMENT_COMPLETED",
			"borrow_id": fmt.Sprintf("%d", res.Transaction.ID),
			"outcome":   string(res.Outcome),
		},
	}
	if err := s.store.Repos().Notifications.Create(ctx, note); err != nil {
		logger.Error("Failed to record settlement notification", "borrow_id", res.Transaction.ID, "error", err)
	}

	if s.emailSvc != nil && customer.Email != "" {
		if err := s.emailSvc.SendSettlementCompleted(ctx, customer.Email, customer.Name, res); err != nil {
			logger.Error("Failed to send settlement email", "borrow_id", res.Transaction.ID, "error", err)
		}
	}
	if s.pushSvc != nil && customer.DeviceToken != "" {
		if err := s.pushSvc.SendSettlementCompleted(ctx, customer.DeviceToken, res); err != nil {
			logger.Error("Failed to send settlement push", "borrow_id", res.Transaction.ID, "error", err)
		}
	}

	if business != nil {
		bizNote := &domain.Notification{
			RecipientID:   business.ID,
			RecipientType: domain.WalletTypeBusiness,
			Title:         "Loan settled",
			Message:       fmt.Sprintf("Borrow #%d settled as %s", res.Transaction.ID, res.Outcome),
			Attributes: map[string]string{
				"type":      "SETTLEMENT_COMPLETED",
				"borrow_id": fmt.Sprintf("%d", res.Transaction.ID),
				"outcome":   string(res.Outcome),
			},
		}
		if err := s.store.Repos().Notifications.Create(ctx, bizNote); err != nil {
			logger.Error("Failed to record business notification", "borrow_id", res.Transaction.ID, "error", err)
		}
	}
}
