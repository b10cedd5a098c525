package domain

import "time"

type WalletType string

const (
	WalletTypeCustomer WalletType = "CUSTOMER"
	WalletTypeBusiness WalletType = "BUSINESS"
)

// Wallet holds two balances per principal: available is spendable,
// holding is escrowed deposit money not yet spendable by its owner.
// Both must stay >= 0 at all times; the settlement path is the only
// writer besides top-up.
type Wallet struct {
	ID               int64      `json:"id"`
	PrincipalID      int64      `json:"principal_id"`
	Type             WalletType `json:"type"`
	AvailableBalance int64      `json:"available_balance"`
	HoldingBalance   int64      `json:"holding_balance"`
	CreatedOn        time.Time  `json:"created_on"`
	UpdatedOn        time.Time  `json:"updated_on"`
}
