package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
	"crowdfund/internal/sqlinline"
)

// Store implements ledger.Store on PostgreSQL. Every Update runs as one
// serializable transaction, so a failed operation rolls back registry and
// ledger writes together.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Init creates the schema when missing and seeds the scalar state row
// with the configured change fee and fee recipient. An existing state row
// wins over the configuration.
func (s *Store) Init(ctx context.Context, changeFee uint64, feeRecipient domain.Principal) error {
	if _, err := s.pool.Exec(ctx, sqlinline.QSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.pool.Exec(ctx, sqlinline.QSeedState, int64(changeFee), string(feeRecipient)); err != nil {
		return fmt.Errorf("seed ledger state: %w", err)
	}
	return nil
}

// Update implements ledger.Store.
func (s *Store) Update(ctx context.Context, fn func(tx ledger.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	return pgx.BeginTxFunc(ctx, s.pool, opts, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

// View implements ledger.Store.
func (s *Store) View(ctx context.Context, fn func(tx ledger.ReadTx) error) error {
	opts := pgx.TxOptions{AccessMode: pgx.ReadOnly}
	return pgx.BeginTxFunc(ctx, s.pool, opts, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Campaign(ctx context.Context, id uint64) (domain.Campaign, error) {
	row := t.tx.QueryRow(ctx, sqlinline.QGetCampaign, int64(id))
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Campaign{}, nil
	}
	return c, err
}

func (t *pgTx) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	count, err := t.CampaignCount(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := t.tx.Query(ctx, sqlinline.QListCampaigns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Identifier slots without a row (never the case after a normal
	// removal, which zeroes in place) still surface as zero records.
	out := make([]domain.Campaign, count)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		if c.ID < count {
			out[c.ID] = c
		}
	}
	return out, rows.Err()
}

func (t *pgTx) Donations(ctx context.Context, campaignID uint64) ([]domain.Donation, error) {
	rows, err := t.tx.Query(ctx, sqlinline.QListDonations, int64(campaignID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Donation
	for rows.Next() {
		var d domain.Donation
		var cid, seq, net int64
		var donor string
		if err := rows.Scan(&cid, &seq, &donor, &net); err != nil {
			return nil, err
		}
		d.CampaignID = uint64(cid)
		d.Seq = uint64(seq)
		d.Donor = domain.Principal(donor)
		d.NetAmount = uint64(net)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (t *pgTx) DonationCount(ctx context.Context, campaignID uint64) (uint64, error) {
	var n int64
	if err := t.tx.QueryRow(ctx, sqlinline.QCountDonations, int64(campaignID)).Scan(&n); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func (t *pgTx) CampaignCount(ctx context.Context) (uint64, error) {
	var n int64
	if err := t.tx.QueryRow(ctx, sqlinline.QGetCampaignCount).Scan(&n); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func (t *pgTx) ChangeFee(ctx context.Context) (uint64, error) {
	var fee int64
	if err := t.tx.QueryRow(ctx, sqlinline.QGetChangeFee).Scan(&fee); err != nil {
		return 0, err
	}
	return uint64(fee), nil
}

func (t *pgTx) FeeRecipient(ctx context.Context) (domain.Principal, error) {
	var p string
	if err := t.tx.QueryRow(ctx, sqlinline.QGetFeeRecipient).Scan(&p); err != nil {
		return "", err
	}
	return domain.Principal(p), nil
}

func (t *pgTx) PutCampaign(ctx context.Context, c domain.Campaign) error {
	_, err := t.tx.Exec(ctx, sqlinline.QUpsertCampaign,
		int64(c.ID), string(c.Creator), string(c.AcceptedAsset),
		c.Title, c.Description, c.ImageURL,
		int64(c.TargetAmount), c.Deadline, int64(c.AmountCollected))
	return err
}

func (t *pgTx) ClearCampaign(ctx context.Context, id uint64) error {
	_, err := t.tx.Exec(ctx, sqlinline.QClearCampaign, int64(id))
	return err
}

func (t *pgTx) AppendDonation(ctx context.Context, d domain.Donation) error {
	_, err := t.tx.Exec(ctx, sqlinline.QAppendDonation,
		int64(d.CampaignID), int64(d.Seq), string(d.Donor), int64(d.NetAmount))
	return err
}

func (t *pgTx) SetCampaignCount(ctx context.Context, n uint64) error {
	_, err := t.tx.Exec(ctx, sqlinline.QSetCampaignCount, int64(n))
	return err
}

func (t *pgTx) SetChangeFee(ctx context.Context, fee uint64) error {
	_, err := t.tx.Exec(ctx, sqlinline.QSetChangeFee, int64(fee))
	return err
}

func (t *pgTx) SetFeeRecipient(ctx context.Context, p domain.Principal) error {
	_, err := t.tx.Exec(ctx, sqlinline.QSetFeeRecipient, string(p))
	return err
}

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	var id, target, deadline, collected int64
	var creator, asset string
	err := row.Scan(&id, &creator, &asset, &c.Title, &c.Description, &c.ImageURL, &target, &deadline, &collected)
	if err != nil {
		return domain.Campaign{}, err
	}
	c.ID = uint64(id)
	c.Creator = domain.Principal(creator)
	c.AcceptedAsset = domain.Asset(asset)
	c.TargetAmount = uint64(target)
	c.Deadline = deadline
	c.AmountCollected = uint64(collected)
	return c, nil
}
