package domain

import "errors"

var (
	// ErrNotFound covers missing products, wallets, loans and principals.
	// Fatal to the attempt, never retried automatically.
	ErrNotFound = errors.New("not found")

	// ErrPolicyNotFound means a policy document is absent. This is a
	// configuration error, not a retryable condition.
	ErrPolicyNotFound = errors.New("policy document not found")

	// ErrInvariantViolation means a write would break a hard invariant,
	// e.g. a wallet balance going negative. Its occurrence indicates a
	// data-integrity bug upstream.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrAlreadySettled is the benign concurrent-settlement outcome: the
	// loan left the BORROWING state before this attempt got the lock.
	ErrAlreadySettled = errors.New("transaction already settled")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLoanLimitReached  = errors.New("concurrent loan limit reached")
	ErrInvalidState      = errors.New("invalid state for operation")
	ErrUnauthorized      = errors.New("unauthorized")
)
