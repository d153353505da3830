package memstore

import (
	"context"
	"sync"

	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
)

// Store keeps the whole ledger in process memory. Update stages writes
// against a deep copy and swaps it in on commit, so a failed operation
// leaves no trace. The store-level lock is the single serialization point
// for all state, including the campaign id counter.
type Store struct {
	mu    sync.RWMutex
	state state
}

type state struct {
	campaigns    map[uint64]domain.Campaign
	donations    map[uint64][]domain.Donation
	count        uint64
	changeFee    uint64
	feeRecipient domain.Principal
}

// New builds a store with the initial scalar configuration.
func New(changeFee uint64, feeRecipient domain.Principal) *Store {
	return &Store{state: state{
		campaigns:    make(map[uint64]domain.Campaign),
		donations:    make(map[uint64][]domain.Donation),
		changeFee:    changeFee,
		feeRecipient: feeRecipient,
	}}
}

// Update implements ledger.Store.
func (s *Store) Update(ctx context.Context, fn func(tx ledger.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.state.clone()
	if err := fn(&memTx{st: &staged}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

// View implements ledger.Store.
func (s *Store) View(ctx context.Context, fn func(tx ledger.ReadTx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memTx{st: &s.state})
}

func (st state) clone() state {
	campaigns := make(map[uint64]domain.Campaign, len(st.campaigns))
	for id, c := range st.campaigns {
		campaigns[id] = c
	}
	donations := make(map[uint64][]domain.Donation, len(st.donations))
	for id, list := range st.donations {
		donations[id] = append([]domain.Donation(nil), list...)
	}
	return state{
		campaigns:    campaigns,
		donations:    donations,
		count:        st.count,
		changeFee:    st.changeFee,
		feeRecipient: st.feeRecipient,
	}
}

type memTx struct {
	st *state
}

func (t *memTx) Campaign(ctx context.Context, id uint64) (domain.Campaign, error) {
	return t.st.campaigns[id], nil
}

func (t *memTx) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	out := make([]domain.Campaign, 0, t.st.count)
	for id := uint64(0); id < t.st.count; id++ {
		out = append(out, t.st.campaigns[id])
	}
	return out, nil
}

func (t *memTx) Donations(ctx context.Context, campaignID uint64) ([]domain.Donation, error) {
	return append([]domain.Donation(nil), t.st.donations[campaignID]...), nil
}

func (t *memTx) DonationCount(ctx context.Context, campaignID uint64) (uint64, error) {
	return uint64(len(t.st.donations[campaignID])), nil
}

func (t *memTx) CampaignCount(ctx context.Context) (uint64, error) {
	return t.st.count, nil
}

func (t *memTx) ChangeFee(ctx context.Context) (uint64, error) {
	return t.st.changeFee, nil
}

func (t *memTx) FeeRecipient(ctx context.Context) (domain.Principal, error) {
	return t.st.feeRecipient, nil
}

func (t *memTx) PutCampaign(ctx context.Context, c domain.Campaign) error {
	t.st.campaigns[c.ID] = c
	return nil
}

func (t *memTx) ClearCampaign(ctx context.Context, id uint64) error {
	delete(t.st.campaigns, id)
	return nil
}

func (t *memTx) AppendDonation(ctx context.Context, d domain.Donation) error {
	t.st.donations[d.CampaignID] = append(t.st.donations[d.CampaignID], d)
	return nil
}

func (t *memTx) SetCampaignCount(ctx context.Context, n uint64) error {
	t.st.count = n
	return nil
}

func (t *memTx) SetChangeFee(ctx context.Context, fee uint64) error {
	t.st.changeFee = fee
	return nil
}

func (t *memTx) SetFeeRecipient(ctx context.Context, p domain.Principal) error {
	t.st.feeRecipient = p
	return nil
}
