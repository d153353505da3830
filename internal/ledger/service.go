package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"crowdfund/internal/domain"
	"crowdfund/internal/gate"
)

// Clock returns the current unix time in seconds. Every operation takes
// its activity decisions from a single reading at entry.
type Clock func() int64

// Service is the campaign/donation accounting engine. A single mutex
// serializes every mutating operation end to end, store writes and
// outbound transfers included, so each operation is observed as either
// fully applied or not applied at all.
type Service struct {
	mu     sync.Mutex
	store  Store
	gate   *gate.Gate
	fees   FeeSchedule
	sink   EventSink
	clock  Clock
	logger zerolog.Logger
}

// Config wires a Service. Store, Gate, and Fees are required; Sink and
// Clock default to a nop sink and the wall clock.
type Config struct {
	Store  Store
	Gate   *gate.Gate
	Fees   FeeSchedule
	Sink   EventSink
	Clock  Clock
	Logger zerolog.Logger
}

// New builds a Service from its configuration.
func New(cfg Config) *Service {
	s := &Service{
		store:  cfg.Store,
		gate:   cfg.Gate,
		fees:   cfg.Fees,
		sink:   cfg.Sink,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}
	if s.sink == nil {
		s.sink = NopSink()
	}
	if s.clock == nil {
		s.clock = func() int64 { return time.Now().Unix() }
	}
	return s
}

// Fees returns the fixed donation fee schedule.
func (s *Service) Fees() FeeSchedule { return s.fees }

// CreateCampaign allocates the next sequential campaign id and stores the
// record with nothing collected. Identifiers start at 0 and are never
// reused, even after removal.
func (s *Service) CreateCampaign(ctx context.Context, creator domain.Principal, asset domain.Asset, title, description, imageURL string, target uint64, deadline int64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if creator == "" {
		return 0, domain.ErrUnauthorized
	}
	now := s.clock()
	if deadline <= now {
		return 0, domain.ErrInvalidDeadline
	}
	if target == 0 {
		return 0, domain.ErrInvalidTargetAmount
	}
	var id uint64
	err := s.store.Update(ctx, func(tx Tx) error {
		n, err := tx.CampaignCount(ctx)
		if err != nil {
			return err
		}
		id = n
		c := domain.Campaign{
			ID:            id,
			Creator:       creator,
			AcceptedAsset: asset,
			Title:         norm.NFC.String(title),
			Description:   norm.NFC.String(description),
			ImageURL:      imageURL,
			TargetAmount:  target,
			Deadline:      deadline,
		}
		if err := tx.PutCampaign(ctx, c); err != nil {
			return err
		}
		return tx.SetCampaignCount(ctx, n+1)
	})
	if err != nil {
		return 0, err
	}
	s.emit(ctx, domain.Event{Kind: domain.EventCampaignCreated, CampaignID: id, Actor: creator})
	return id, nil
}

// DonateNative records a native-currency donation. The fee is skimmed
// from the gross amount, the remainder is forwarded to the creator, and
// the returned id is the donation's position in the campaign ledger.
func (s *Service) DonateNative(ctx context.Context, donor domain.Principal, campaignID, gross uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if donor == "" {
		return 0, domain.ErrUnauthorized
	}
	if gross == 0 {
		return 0, domain.ErrNoValueSent
	}
	now := s.clock()
	payout := s.gate.NewPayout()
	var seq, net uint64
	err := s.store.Update(ctx, func(tx Tx) error {
		c, err := tx.Campaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if err := donatable(c, now); err != nil {
			return err
		}
		if !c.AcceptedAsset.IsNative() {
			return domain.ErrUnacceptableToken
		}
		fee, n, err := s.fees.Split(gross)
		if err != nil {
			return err
		}
		net = n
		if seq, err = s.record(ctx, tx, c, domain.Donation{CampaignID: campaignID, Donor: donor, NetAmount: net}); err != nil {
			return err
		}
		recipient, err := tx.FeeRecipient(ctx)
		if err != nil {
			return err
		}
		if err := payout.Native(ctx, donor, recipient, fee); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrFeeTransferFailed, err)
		}
		if err := payout.Native(ctx, donor, c.Creator, net); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrDonationTransferFailed, err)
		}
		return nil
	})
	if err != nil {
		payout.Abort(ctx)
		return 0, err
	}
	s.emit(ctx, domain.Event{Kind: domain.EventDonated, CampaignID: campaignID, Actor: donor, Amount: net})
	return seq, nil
}

// DonateToken records a fungible-token donation. With coverFee the donor
// pays the fee on top of the gift, so the creator receives the full gross
// amount; otherwise the fee is deducted from it. Both pulls require the
// donor's pre-authorization, and each failure is surfaced distinctly.
func (s *Service) DonateToken(ctx context.Context, donor domain.Principal, campaignID uint64, token domain.Asset, gross uint64, coverFee bool) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if donor == "" {
		return 0, domain.ErrUnauthorized
	}
	if gross == 0 {
		return 0, domain.ErrNoValueSent
	}
	now := s.clock()
	payout := s.gate.NewPayout()
	var seq, net uint64
	err := s.store.Update(ctx, func(tx Tx) error {
		c, err := tx.Campaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if err := donatable(c, now); err != nil {
			return err
		}
		if c.AcceptedAsset.IsNative() || token != c.AcceptedAsset {
			return domain.ErrUnacceptableToken
		}
		fee := s.fees.Fee(gross)
		if coverFee {
			// The donor covers the fee on top: debited gross+fee in total.
			if _, err := addChecked(gross, fee); err != nil {
				return err
			}
			net = gross
		} else {
			if fee, net, err = s.fees.Split(gross); err != nil {
				return err
			}
		}
		if seq, err = s.record(ctx, tx, c, domain.Donation{CampaignID: campaignID, Donor: donor, NetAmount: net}); err != nil {
			return err
		}
		recipient, err := tx.FeeRecipient(ctx)
		if err != nil {
			return err
		}
		if err := payout.Token(ctx, token, donor, recipient, fee); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrFeeTransferFailed, err)
		}
		if err := payout.Token(ctx, token, donor, c.Creator, net); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrDonationTransferFailed, err)
		}
		return nil
	})
	if err != nil {
		payout.Abort(ctx)
		return 0, err
	}
	s.emit(ctx, domain.Event{Kind: domain.EventDonated, CampaignID: campaignID, Actor: donor, Amount: net})
	return seq, nil
}

// ChangeDeadline overwrites an active campaign's deadline for a flat fee.
// The new value is not validated against the current time: a creator may
// deliberately move the deadline into the past to stop donations.
func (s *Service) ChangeDeadline(ctx context.Context, caller domain.Principal, campaignID uint64, newDeadline int64, reason string, paidFee uint64) error {
	return s.change(ctx, caller, campaignID, reason, paidFee,
		domain.EventDeadlineChanged, uint64(newDeadline),
		func(c *domain.Campaign) { c.Deadline = newDeadline })
}

// ChangeTargetAmount overwrites an active campaign's goal for a flat fee.
// The new value is not cross-checked against the amount already
// collected.
func (s *Service) ChangeTargetAmount(ctx context.Context, caller domain.Principal, campaignID uint64, newTarget uint64, reason string, paidFee uint64) error {
	return s.change(ctx, caller, campaignID, reason, paidFee,
		domain.EventTargetAmountChanged, newTarget,
		func(c *domain.Campaign) { c.TargetAmount = newTarget })
}

// change applies one creator-gated field update. Preconditions run in
// order: activity, authorship, exact fee; then the fee is paid and the
// field overwritten, all-or-nothing.
func (s *Service) change(ctx context.Context, caller domain.Principal, campaignID uint64, reason string, paidFee uint64, kind domain.EventKind, newValue uint64, apply func(c *domain.Campaign)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	payout := s.gate.NewPayout()
	err := s.store.Update(ctx, func(tx Tx) error {
		c, err := tx.Campaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if err := donatable(c, now); err != nil {
			return err
		}
		if err := s.gate.RequireCreator(caller, c); err != nil {
			return err
		}
		required, err := tx.ChangeFee(ctx)
		if err != nil {
			return err
		}
		if paidFee != required {
			return domain.ErrIncorrectFeeAmount
		}
		recipient, err := tx.FeeRecipient(ctx)
		if err != nil {
			return err
		}
		if err := payout.Native(ctx, caller, recipient, paidFee); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrFeeTransferFailed, err)
		}
		apply(&c)
		return tx.PutCampaign(ctx, c)
	})
	if err != nil {
		payout.Abort(ctx)
		return err
	}
	s.emit(ctx, domain.Event{Kind: kind, CampaignID: campaignID, Actor: caller, Amount: newValue, Reason: reason})
	return nil
}

// RemoveCampaign zeroes a campaign record. Owner-only; the identifier
// slot stays occupied and the recorded donations remain addressable.
func (s *Service) RemoveCampaign(ctx context.Context, caller domain.Principal, campaignID uint64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gate.RequireOwner(caller); err != nil {
		return err
	}
	err := s.store.Update(ctx, func(tx Tx) error {
		c, err := tx.Campaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if !c.Exists() {
			return domain.ErrCampaignNotFound
		}
		return tx.ClearCampaign(ctx, campaignID)
	})
	if err != nil {
		return err
	}
	s.emit(ctx, domain.Event{Kind: domain.EventCampaignRemoved, CampaignID: campaignID, Actor: caller, Reason: reason})
	return nil
}

// SetChangeFee sets the flat fee charged for deadline and goal changes.
func (s *Service) SetChangeFee(ctx context.Context, caller domain.Principal, fee uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gate.RequireOwner(caller); err != nil {
		return err
	}
	if err := s.store.Update(ctx, func(tx Tx) error {
		return tx.SetChangeFee(ctx, fee)
	}); err != nil {
		return err
	}
	s.logger.Info().Uint64("change_fee", fee).Msg("change fee updated")
	return nil
}

// SetFeeRecipient redirects future fee transfers.
func (s *Service) SetFeeRecipient(ctx context.Context, caller domain.Principal, recipient domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gate.RequireOwner(caller); err != nil {
		return err
	}
	if recipient == "" {
		return fmt.Errorf("fee recipient must not be empty")
	}
	if err := s.store.Update(ctx, func(tx Tx) error {
		return tx.SetFeeRecipient(ctx, recipient)
	}); err != nil {
		return err
	}
	s.logger.Info().Str("fee_recipient", string(recipient)).Msg("fee recipient updated")
	return nil
}

// GetCampaign returns the record verbatim: a zero record when the id was
// never assigned or the campaign was removed. Callers must treat an empty
// creator as "does not exist".
func (s *Service) GetCampaign(ctx context.Context, id uint64) (domain.Campaign, error) {
	var c domain.Campaign
	err := s.store.View(ctx, func(tx ReadTx) error {
		var err error
		c, err = tx.Campaign(ctx, id)
		return err
	})
	return c, err
}

// ListCampaigns returns every campaign in identifier order, removed
// (zeroed) slots included.
func (s *Service) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := s.store.View(ctx, func(tx ReadTx) error {
		var err error
		out, err = tx.Campaigns(ctx)
		return err
	})
	return out, err
}

// GetDonations returns a campaign's full donation history in recording
// order.
func (s *Service) GetDonations(ctx context.Context, campaignID uint64) ([]domain.Donation, error) {
	var out []domain.Donation
	err := s.store.View(ctx, func(tx ReadTx) error {
		var err error
		out, err = tx.Donations(ctx, campaignID)
		return err
	})
	return out, err
}

// ChangeFee returns the current flat change fee.
func (s *Service) ChangeFee(ctx context.Context) (uint64, error) {
	var fee uint64
	err := s.store.View(ctx, func(tx ReadTx) error {
		var err error
		fee, err = tx.ChangeFee(ctx)
		return err
	})
	return fee, err
}

// Now returns the service clock's current reading.
func (s *Service) Now() int64 { return s.clock() }

// record appends the donation at the next sequence number and credits the
// campaign's collected amount, returning the assigned sequence.
func (s *Service) record(ctx context.Context, tx Tx, c domain.Campaign, d domain.Donation) (uint64, error) {
	seq, err := tx.DonationCount(ctx, d.CampaignID)
	if err != nil {
		return 0, err
	}
	d.Seq = seq
	if err := tx.AppendDonation(ctx, d); err != nil {
		return 0, err
	}
	if c.AmountCollected, err = addChecked(c.AmountCollected, d.NetAmount); err != nil {
		return 0, err
	}
	return seq, tx.PutCampaign(ctx, c)
}

// donatable checks the active window. The deadline takes precedence over
// the goal, and both are exclusive boundaries for further donations.
func donatable(c domain.Campaign, now int64) error {
	if now >= c.Deadline {
		return domain.ErrCampaignEnded
	}
	if c.AmountCollected >= c.TargetAmount {
		return domain.ErrGoalReached
	}
	return nil
}

func (s *Service) emit(ctx context.Context, ev domain.Event) {
	ev.ID = uuid.NewString()
	ev.At = time.Unix(s.clock(), 0).UTC()
	s.sink.Record(ctx, ev)
}
