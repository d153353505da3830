package ledger

import (
	"context"

	"crowdfund/internal/domain"
)

// ReadTx is a consistent read view over the ledger state.
//
// Campaign returns the record verbatim: a zero record when the identifier
// was never assigned or the campaign was removed. Campaigns returns every
// slot from 0 to campaignCount-1 in identifier order, removed slots
// included as zero records.
type ReadTx interface {
	Campaign(ctx context.Context, id uint64) (domain.Campaign, error)
	Campaigns(ctx context.Context) ([]domain.Campaign, error)
	Donations(ctx context.Context, campaignID uint64) ([]domain.Donation, error)
	DonationCount(ctx context.Context, campaignID uint64) (uint64, error)
	CampaignCount(ctx context.Context) (uint64, error)
	ChangeFee(ctx context.Context) (uint64, error)
	FeeRecipient(ctx context.Context) (domain.Principal, error)
}

// Tx extends ReadTx with staged writes. Writes become visible to other
// transactions only when the enclosing Update commits.
type Tx interface {
	ReadTx

	PutCampaign(ctx context.Context, c domain.Campaign) error
	// ClearCampaign zeroes the record but keeps the identifier slot, so
	// list reads still report it and the id is never reassigned.
	ClearCampaign(ctx context.Context, id uint64) error
	AppendDonation(ctx context.Context, d domain.Donation) error
	SetCampaignCount(ctx context.Context, n uint64) error
	SetChangeFee(ctx context.Context, fee uint64) error
	SetFeeRecipient(ctx context.Context, p domain.Principal) error
}

// Store is the durable state contract. Update runs fn inside a
// transaction that commits only when fn returns nil; any error discards
// every staged write. View runs fn against a consistent snapshot.
type Store interface {
	Update(ctx context.Context, fn func(tx Tx) error) error
	View(ctx context.Context, fn func(tx ReadTx) error) error
}
