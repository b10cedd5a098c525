package domain

import "time"

type EntryType string

const (
	EntryTypeDeposit    EntryType = "DEPOSIT"
	EntryTypeRefund     EntryType = "REFUND"
	EntryTypePenalty    EntryType = "PENALTY"
	EntryTypeForfeiture EntryType = "FORFEITURE"
	EntryTypeTopUp      EntryType = "TOPUP"
)

type EntryDirection string

const (
	DirectionIn  EntryDirection = "IN"
	DirectionOut EntryDirection = "OUT"
)

type BalanceBucket string

const (
	BucketAvailable BalanceBucket = "AVAILABLE"
	BucketHolding   BalanceBucket = "HOLDING"
)

type EntryStatus string

const EntryStatusPosted EntryStatus = "POSTED"

// LedgerEntry records one fund movement from the named wallet's
// perspective. Amount is always positive; Direction carries the sign.
// Source/Target bucket tags describe intra-wallet transfers (the
// forfeiture case moves holding to available within one wallet).
// Entries are created once and never mutated.
type LedgerEntry struct {
	ID            int64          `json:"id"`
	WalletID      int64          `json:"wallet_id"`
	Amount        int64          `json:"amount"`
	Type          EntryType      `json:"type"`
	Direction     EntryDirection `json:"direction"`
	SourceBucket  BalanceBucket  `json:"source_bucket,omitempty"`
	TargetBucket  BalanceBucket  `json:"target_bucket,omitempty"`
	Status        EntryStatus    `json:"status"`
	BorrowID      *int64         `json:"borrow_id,omitempty"`
	SettlementRef string         `json:"settlement_ref,omitempty"`
	Description   string         `json:"description"`
	CreatedOn     time.Time      `json:"created_on"`
}
