package unit

import (
	"context"
	"time"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeStore runs ExecTx callbacks directly against the mock
// repositories, standing in for a real transaction scope.
type fakeStore struct {
	repos *repository.Repositories
}

func (s *fakeStore) Repos() *repository.Repositories {
	return s.repos
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return fn(s.repos)
}

// MockBorrowRepo
type MockBorrowRepo struct {
	mock.Mock
}

func (m *MockBorrowRepo) Create(ctx context.Context, bt *domain.BorrowTransaction) error {
	args := m.Called(ctx, bt)
	return args.Error(0)
}
func (m *MockBorrowRepo) GetByID(ctx context.Context, id int64) (*domain.BorrowTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowTransaction), args.Error(1)
}
func (m *MockBorrowRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.BorrowTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowTransaction), args.Error(1)
}
func (m *MockBorrowRepo) Update(ctx context.Context, bt *domain.BorrowTransaction) error {
	args := m.Called(ctx, bt)
	return args.Error(0)
}
func (m *MockBorrowRepo) ListByCustomer(ctx context.Context, customerID int64, state string, page, pageSize int32) ([]domain.BorrowTransaction, int32, error) {
	args := m.Called(ctx, customerID, state, page, pageSize)
	return args.Get(0).([]domain.BorrowTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockBorrowRepo) CountOpenByCustomer(ctx context.Context, customerID int64) (int32, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBorrowRepo) ListOverdueCandidates(ctx context.Context, cutoff time.Time, limit int32) ([]domain.BorrowTransaction, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).([]domain.BorrowTransaction), args.Error(1)
}

// MockWalletRepo
type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletRepo) GetByPrincipal(ctx context.Context, principalID int64, walletType domain.WalletType) (*domain.Wallet, error) {
	args := m.Called(ctx, principalID, walletType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletRepo) AdjustBalances(ctx context.Context, walletID int64, availableDelta, holdingDelta int64) error {
	args := m.Called(ctx, walletID, availableDelta, holdingDelta)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByWallet(ctx context.Context, walletID int64, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, walletID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) ListByBorrow(ctx context.Context, borrowID int64) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, borrowID)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) GetDetail(ctx context.Context, productID int64) (*domain.ProductDetail, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductDetail), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) ApplyPointDelta(ctx context.Context, customerID int64, reward, ranking, successDelta, failedDelta int32) error {
	args := m.Called(ctx, customerID, reward, ranking, successDelta, failedDelta)
	return args.Error(0)
}

// MockBusinessRepo
type MockBusinessRepo struct {
	mock.Mock
}

func (m *MockBusinessRepo) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessRepo) ApplySettlement(ctx context.Context, businessID int64, rewardPoolDelta int32, ecoDelta, co2Delta decimal.Decimal) error {
	args := m.Called(ctx, businessID, rewardPoolDelta, ecoDelta, co2Delta)
	return args.Error(0)
}

// MockPolicyRepo
type MockPolicyRepo struct {
	mock.Mock
}

func (m *MockPolicyRepo) GetBorrowPolicy(ctx context.Context) (*domain.BorrowPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowPolicy), args.Error(1)
}
func (m *MockPolicyRepo) GetRewardPolicy(ctx context.Context) (*domain.RewardPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardPolicy), args.Error(1)
}
func (m *MockPolicyRepo) GetDamagePolicy(ctx context.Context) (*domain.DamagePolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DamagePolicy), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, recipientID int64, recipientType domain.WalletType, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, recipientID, recipientType, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, recipientID int64) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendSettlementCompleted(ctx context.Context, email, name string, res *domain.SettlementResult) error {
	args := m.Called(ctx, email, name, res)
	return args.Error(0)
}
func (m *MockEmailService) SendDueReminder(ctx context.Context, email, name string, bt *domain.BorrowTransaction) error {
	args := m.Called(ctx, email, name, bt)
	return args.Error(0)
}

// mockRepos bundles fresh mocks into a Repositories value.
type mockRepos struct {
	borrows       *MockBorrowRepo
	wallets       *MockWalletRepo
	ledger        *MockLedgerRepo
	products      *MockProductRepo
	customers     *MockCustomerRepo
	businesses    *MockBusinessRepo
	policies      *MockPolicyRepo
	notifications *MockNotificationRepo
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		borrows:       new(MockBorrowRepo),
		wallets:       new(MockWalletRepo),
		ledger:        new(MockLedgerRepo),
		products:      new(MockProductRepo),
		customers:     new(MockCustomerRepo),
		businesses:    new(MockBusinessRepo),
		policies:      new(MockPolicyRepo),
		notifications: new(MockNotificationRepo),
	}
}

func (m *mockRepos) store() *fakeStore {
	return &fakeStore{repos: &repository.Repositories{
		Borrows:       m.borrows,
		Wallets:       m.wallets,
		Ledger:        m.ledger,
		Products:      m.products,
		Customers:     m.customers,
		Businesses:    m.businesses,
		Policies:      m.policies,
		Notifications: m.notifications,
	}}
}
