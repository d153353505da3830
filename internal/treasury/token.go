package treasury

import (
	"context"
	"fmt"
	"sync"

	"crowdfund/internal/domain"
)

// TokenBank is an ERC-20 style multi-token ledger: per-token balances plus
// owner-to-spender allowances consumed by TransferFrom. The ledger service
// acts as a single spender identity, the operator, which donors must have
// pre-authorized before donating.
type TokenBank struct {
	mu        sync.Mutex
	operator  domain.Principal
	balances  map[domain.Asset]map[domain.Principal]uint64
	allowance map[domain.Asset]map[domain.Principal]uint64
	rejecting map[domain.Principal]bool
}

// NewTokenBank returns an empty token bank with the given operator.
func NewTokenBank(operator domain.Principal) *TokenBank {
	return &TokenBank{
		operator:  operator,
		balances:  make(map[domain.Asset]map[domain.Principal]uint64),
		allowance: make(map[domain.Asset]map[domain.Principal]uint64),
		rejecting: make(map[domain.Principal]bool),
	}
}

// Mint credits an account directly. Used to fund accounts in development
// and tests.
func (t *TokenBank) Mint(token domain.Asset, p domain.Principal, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bal(token)[p] += amount
}

// Approve sets the amount the operator may pull from the owner's balance.
func (t *TokenBank) Approve(token domain.Asset, owner domain.Principal, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.allow(token)[owner] = amount
}

// BalanceOf returns the owner's balance for a token.
func (t *TokenBank) BalanceOf(token domain.Asset, p domain.Principal) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bal(token)[p]
}

// Allowance returns what the operator may still pull from the owner.
func (t *TokenBank) Allowance(token domain.Asset, owner domain.Principal) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allow(token)[owner]
}

// SetRejecting marks or unmarks an account as refusing incoming credits.
func (t *TokenBank) SetRejecting(p domain.Principal, rejecting bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rejecting[p] = rejecting
}

// TransferFrom pulls amount from the owner's balance to the recipient,
// consuming the operator's allowance. Both a refused recipient and an
// exhausted allowance fail the call without side effects.
func (t *TokenBank) TransferFrom(ctx context.Context, token domain.Asset, owner, recipient domain.Principal, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rejecting[recipient] {
		return fmt.Errorf("account %q rejects %q transfers", recipient, token)
	}
	if t.allow(token)[owner] < amount {
		return fmt.Errorf("allowance of %q for %q too low: %d < %d", owner, token, t.allow(token)[owner], amount)
	}
	if t.bal(token)[owner] < amount {
		return fmt.Errorf("account %q has insufficient %q balance: %d < %d", owner, token, t.bal(token)[owner], amount)
	}
	t.allow(token)[owner] -= amount
	t.bal(token)[owner] -= amount
	t.bal(token)[recipient] += amount
	return nil
}

// Refund moves previously pulled funds from the recipient back to the
// owner and restores the allowance the matching TransferFrom consumed.
// Used only to unwind a partially applied payout.
func (t *TokenBank) Refund(ctx context.Context, token domain.Asset, recipient, owner domain.Principal, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bal(token)[recipient] < amount {
		return fmt.Errorf("account %q has insufficient %q balance to refund: %d < %d", recipient, token, t.bal(token)[recipient], amount)
	}
	t.bal(token)[recipient] -= amount
	t.bal(token)[owner] += amount
	t.allow(token)[owner] += amount
	return nil
}

func (t *TokenBank) bal(token domain.Asset) map[domain.Principal]uint64 {
	m, ok := t.balances[token]
	if !ok {
		m = make(map[domain.Principal]uint64)
		t.balances[token] = m
	}
	return m
}

func (t *TokenBank) allow(token domain.Asset) map[domain.Principal]uint64 {
	m, ok := t.allowance[token]
	if !ok {
		m = make(map[domain.Principal]uint64)
		t.allowance[token] = m
	}
	return m
}
