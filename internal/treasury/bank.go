package treasury

import (
	"context"
	"fmt"
	"sync"

	"crowdfund/internal/domain"
)

// Bank is an in-memory native-currency ledger keyed by principal. It
// stands in for the execution environment's value transfer: each Transfer
// is atomic per call and either moves the whole amount or nothing.
// Accounts can be marked as rejecting credits, the equivalent of a
// recipient that refuses incoming value.
type Bank struct {
	mu        sync.Mutex
	balances  map[domain.Principal]uint64
	rejecting map[domain.Principal]bool
}

// NewBank returns an empty bank.
func NewBank() *Bank {
	return &Bank{
		balances:  make(map[domain.Principal]uint64),
		rejecting: make(map[domain.Principal]bool),
	}
}

// Deposit credits an account directly, bypassing transfer checks. Used to
// fund accounts in development and tests.
func (b *Bank) Deposit(p domain.Principal, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[p] += amount
}

// Balance returns the current balance of an account.
func (b *Bank) Balance(p domain.Principal) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[p]
}

// SetRejecting marks or unmarks an account as refusing incoming credits.
func (b *Bank) SetRejecting(p domain.Principal, rejecting bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejecting[p] = rejecting
}

// Transfer moves amount from one account to another. It fails without
// side effects when the sender lacks funds or the recipient rejects
// credits.
func (b *Bank) Transfer(ctx context.Context, from, to domain.Principal, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rejecting[to] {
		return fmt.Errorf("account %q rejects transfers", to)
	}
	if b.balances[from] < amount {
		return fmt.Errorf("account %q has insufficient funds: %d < %d", from, b.balances[from], amount)
	}
	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}
