package gate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
)

// NativeTreasury moves native currency between principals. Each call is
// atomic: it either moves the whole amount or fails with no effect.
type NativeTreasury interface {
	Transfer(ctx context.Context, from, to domain.Principal, amount uint64) error
}

// TokenClient moves fungible tokens the ledger has been pre-authorized to
// spend. Both a revert-style error and a false return from the underlying
// asset contract surface here as a non-nil error. Refund unwinds a
// previous pull, restoring the allowance it consumed.
type TokenClient interface {
	TransferFrom(ctx context.Context, token domain.Asset, owner, recipient domain.Principal, amount uint64) error
	Refund(ctx context.Context, token domain.Asset, recipient, owner domain.Principal, amount uint64) error
}

// Gate enforces who may call privileged operations and mediates outbound
// value transfers for the ledger service.
type Gate struct {
	owner    domain.Principal
	treasury NativeTreasury
	tokens   TokenClient
	logger   zerolog.Logger
}

// New builds a gate. tokens may be nil when no token asset is configured;
// token payouts then fail cleanly.
func New(owner domain.Principal, treasury NativeTreasury, tokens TokenClient, logger zerolog.Logger) *Gate {
	return &Gate{owner: owner, treasury: treasury, tokens: tokens, logger: logger}
}

// RequireOwner fails unless the caller is the contract owner.
func (g *Gate) RequireOwner(p domain.Principal) error {
	if p == "" || p != g.owner {
		return domain.ErrUnauthorized
	}
	return nil
}

// RequireCreator fails unless the caller is the campaign's creator.
func (g *Gate) RequireCreator(p domain.Principal, c domain.Campaign) error {
	if p == "" || p != c.Creator {
		return domain.ErrUnauthorized
	}
	return nil
}

// Payout is one operation's outbound transfer sequence. Legs are applied
// eagerly; Abort unwinds the completed ones so the enclosing operation
// stays all-or-nothing even when a later leg fails.
type Payout struct {
	g    *Gate
	undo []func(ctx context.Context) error
}

// NewPayout starts an empty transfer sequence.
func (g *Gate) NewPayout() *Payout { return &Payout{g: g} }

// Native transfers native currency. A zero amount is a no-op.
func (p *Payout) Native(ctx context.Context, from, to domain.Principal, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := p.g.treasury.Transfer(ctx, from, to, amount); err != nil {
		return err
	}
	p.undo = append(p.undo, func(ctx context.Context) error {
		return p.g.treasury.Transfer(ctx, to, from, amount)
	})
	return nil
}

// Token pulls tokens from the owner's pre-authorized balance. A zero
// amount is a no-op.
func (p *Payout) Token(ctx context.Context, token domain.Asset, from, to domain.Principal, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if p.g.tokens == nil {
		return fmt.Errorf("no token client configured")
	}
	if err := p.g.tokens.TransferFrom(ctx, token, from, to, amount); err != nil {
		return err
	}
	p.undo = append(p.undo, func(ctx context.Context) error {
		return p.g.tokens.Refund(ctx, token, to, from, amount)
	})
	return nil
}

// Abort unwinds completed legs in reverse order. A failing reversal is
// logged; there is nothing further to fall back to.
func (p *Payout) Abort(ctx context.Context) {
	for i := len(p.undo) - 1; i >= 0; i-- {
		if err := p.undo[i](ctx); err != nil {
			p.g.logger.Error().Err(err).Msg("payout reversal failed")
		}
	}
	p.undo = nil
}
