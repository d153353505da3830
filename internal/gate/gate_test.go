package gate

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/domain"
	"crowdfund/internal/treasury"
)

func TestRequireOwner(t *testing.T) {
	g := New("owner", treasury.NewBank(), nil, zerolog.Nop())

	require.NoError(t, g.RequireOwner("owner"))
	require.ErrorIs(t, g.RequireOwner("someone"), domain.ErrUnauthorized)
	require.ErrorIs(t, g.RequireOwner(""), domain.ErrUnauthorized)
}

func TestRequireCreator(t *testing.T) {
	g := New("owner", treasury.NewBank(), nil, zerolog.Nop())
	c := domain.Campaign{Creator: "alice"}

	require.NoError(t, g.RequireCreator("alice", c))
	require.ErrorIs(t, g.RequireCreator("bob", c), domain.ErrUnauthorized)
	// An anonymous caller never matches, not even a cleared record.
	require.ErrorIs(t, g.RequireCreator("", domain.Campaign{}), domain.ErrUnauthorized)
}

func TestPayoutAbortReversesNativeLegs(t *testing.T) {
	bank := treasury.NewBank()
	bank.Deposit("donor", 100)
	g := New("owner", bank, nil, zerolog.Nop())

	p := g.NewPayout()
	require.NoError(t, p.Native(context.Background(), "donor", "fee-recipient", 5))
	require.NoError(t, p.Native(context.Background(), "donor", "creator", 95))

	p.Abort(context.Background())

	require.Equal(t, uint64(100), bank.Balance("donor"))
	require.Zero(t, bank.Balance("fee-recipient"))
	require.Zero(t, bank.Balance("creator"))
}

func TestPayoutFailedLegIsNotRecorded(t *testing.T) {
	bank := treasury.NewBank()
	bank.Deposit("donor", 100)
	bank.SetRejecting("creator", true)
	g := New("owner", bank, nil, zerolog.Nop())

	p := g.NewPayout()
	require.NoError(t, p.Native(context.Background(), "donor", "fee-recipient", 5))
	require.Error(t, p.Native(context.Background(), "donor", "creator", 95))

	// Abort unwinds only the completed fee leg.
	p.Abort(context.Background())
	require.Equal(t, uint64(100), bank.Balance("donor"))
	require.Zero(t, bank.Balance("fee-recipient"))
}

func TestPayoutZeroAmountIsNoop(t *testing.T) {
	bank := treasury.NewBank()
	g := New("owner", bank, nil, zerolog.Nop())

	p := g.NewPayout()
	require.NoError(t, p.Native(context.Background(), "donor", "creator", 0))
	p.Abort(context.Background())
	require.Zero(t, bank.Balance("creator"))
}

func TestPayoutTokenAbortRestoresAllowance(t *testing.T) {
	tokens := treasury.NewTokenBank("operator")
	tokens.Mint("usd", "donor", 100)
	tokens.Approve("usd", "donor", 100)
	g := New("owner", treasury.NewBank(), tokens, zerolog.Nop())

	p := g.NewPayout()
	require.NoError(t, p.Token(context.Background(), "usd", "donor", "creator", 40))
	require.Equal(t, uint64(60), tokens.Allowance("usd", "donor"))

	p.Abort(context.Background())

	require.Equal(t, uint64(100), tokens.BalanceOf("usd", "donor"))
	require.Zero(t, tokens.BalanceOf("usd", "creator"))
	require.Equal(t, uint64(100), tokens.Allowance("usd", "donor"))
}

func TestPayoutTokenWithoutClientFails(t *testing.T) {
	g := New("owner", treasury.NewBank(), nil, zerolog.Nop())

	p := g.NewPayout()
	require.Error(t, p.Token(context.Background(), "usd", "donor", "creator", 1))
}
