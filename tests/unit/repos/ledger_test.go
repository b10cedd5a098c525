package repos

import (
	"context"
	"testing"
	"time"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestLedgerRepository_CreateEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		borrowID := int64(7)
		entry := &domain.LedgerEntry{
			WalletID:      11,
			Amount:        50000,
			Type:          domain.EntryTypeDeposit,
			Direction:     domain.DirectionOut,
			SourceBucket:  domain.BucketAvailable,
			Status:        domain.EntryStatusPosted,
			BorrowID:      &borrowID,
			SettlementRef: "ref-1",
			Description:   "Deposit escrowed for borrow",
		}

		mock.ExpectQuery("INSERT INTO ledger_entries").
			WithArgs(entry.WalletID, entry.Amount, entry.Type, entry.Direction,
				"AVAILABLE", nil, entry.Status, entry.BorrowID, "ref-1", entry.Description).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(int64(1), time.Now()))

		err := repo.CreateEntry(ctx, entry)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), entry.ID)
	})

	t.Run("Empty buckets insert as NULL", func(t *testing.T) {
		entry := &domain.LedgerEntry{
			WalletID:  11,
			Amount:    5000,
			Type:      domain.EntryTypeTopUp,
			Direction: domain.DirectionIn,
			Status:    domain.EntryStatusPosted,
		}

		mock.ExpectQuery("INSERT INTO ledger_entries").
			WithArgs(entry.WalletID, entry.Amount, entry.Type, entry.Direction,
				nil, nil, entry.Status, nil, nil, entry.Description).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(int64(2), time.Now()))

		err := repo.CreateEntry(ctx, entry)
		assert.NoError(t, err)
	})
}

func TestLedgerRepository_ListByBorrow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	cols := []string{
		"id", "wallet_id", "amount", "type", "direction",
		"source_bucket", "target_bucket", "status",
		"borrow_id", "settlement_ref", "description", "created_on",
	}

	t.Run("Scans nullable buckets", func(t *testing.T) {
		borrowID := int64(1)
		mock.ExpectQuery("SELECT (.+) FROM ledger_entries WHERE borrow_id").
			WithArgs(borrowID).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(1), int64(22), int64(50000), "FORFEITURE", "IN",
					"HOLDING", "AVAILABLE", "POSTED", borrowID, "ref-1", "Deposit forfeited", time.Now()).
				AddRow(int64(2), int64(11), int64(5000), "TOPUP", "IN",
					nil, "AVAILABLE", "POSTED", nil, nil, "", time.Now()))

		entries, err := repo.ListByBorrow(ctx, borrowID)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, domain.BucketHolding, entries[0].SourceBucket)
		assert.Equal(t, domain.BalanceBucket(""), entries[1].SourceBucket)
	})
}
