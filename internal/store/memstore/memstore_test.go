package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
)

func TestUpdateCommitsOnNilError(t *testing.T) {
	s := New(10, "treasury")
	ctx := context.Background()

	c := domain.Campaign{ID: 0, Creator: "alice", Title: "t", TargetAmount: 100, Deadline: 50}
	err := s.Update(ctx, func(tx ledger.Tx) error {
		if err := tx.PutCampaign(ctx, c); err != nil {
			return err
		}
		return tx.SetCampaignCount(ctx, 1)
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	var got domain.Campaign
	_ = s.View(ctx, func(tx ledger.ReadTx) error {
		got, _ = tx.Campaign(ctx, 0)
		return nil
	})
	if diff := cmp.Diff(c, got); diff != "" {
		t.Fatalf("campaign mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateDiscardsStagedWritesOnError(t *testing.T) {
	s := New(10, "treasury")
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx ledger.Tx) error {
		_ = tx.PutCampaign(ctx, domain.Campaign{ID: 0, Creator: "alice", TargetAmount: 1})
		_ = tx.AppendDonation(ctx, domain.Donation{CampaignID: 0, Donor: "bob", NetAmount: 5})
		_ = tx.SetCampaignCount(ctx, 1)
		_ = tx.SetChangeFee(ctx, 999)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want %v", err, boom)
	}

	_ = s.View(ctx, func(tx ledger.ReadTx) error {
		if c, _ := tx.Campaign(ctx, 0); c.Exists() {
			t.Fatal("campaign write survived a rolled-back update")
		}
		if n, _ := tx.CampaignCount(ctx); n != 0 {
			t.Fatalf("campaign count = %d, want 0", n)
		}
		if ds, _ := tx.Donations(ctx, 0); len(ds) != 0 {
			t.Fatalf("donations = %d, want 0", len(ds))
		}
		if fee, _ := tx.ChangeFee(ctx); fee != 10 {
			t.Fatalf("change fee = %d, want 10", fee)
		}
		return nil
	})
}

func TestCampaignsListIncludesClearedSlots(t *testing.T) {
	s := New(0, "treasury")
	ctx := context.Background()

	_ = s.Update(ctx, func(tx ledger.Tx) error {
		_ = tx.PutCampaign(ctx, domain.Campaign{ID: 0, Creator: "alice", TargetAmount: 1, Deadline: 9})
		_ = tx.PutCampaign(ctx, domain.Campaign{ID: 1, Creator: "carol", TargetAmount: 2, Deadline: 9})
		_ = tx.SetCampaignCount(ctx, 2)
		return nil
	})
	_ = s.Update(ctx, func(tx ledger.Tx) error {
		return tx.ClearCampaign(ctx, 0)
	})

	_ = s.View(ctx, func(tx ledger.ReadTx) error {
		list, _ := tx.Campaigns(ctx)
		if len(list) != 2 {
			t.Fatalf("list length = %d, want 2", len(list))
		}
		if list[0].Exists() {
			t.Fatal("cleared slot should read as a zero record")
		}
		if list[1].Creator != "carol" {
			t.Fatalf("slot 1 creator = %q, want carol", list[1].Creator)
		}
		return nil
	})
}

func TestDonationsReturnCopies(t *testing.T) {
	s := New(0, "treasury")
	ctx := context.Background()

	_ = s.Update(ctx, func(tx ledger.Tx) error {
		return tx.AppendDonation(ctx, domain.Donation{CampaignID: 7, Seq: 0, Donor: "bob", NetAmount: 42})
	})

	var first []domain.Donation
	_ = s.View(ctx, func(tx ledger.ReadTx) error {
		first, _ = tx.Donations(ctx, 7)
		return nil
	})
	first[0].NetAmount = 0

	_ = s.View(ctx, func(tx ledger.ReadTx) error {
		ds, _ := tx.Donations(ctx, 7)
		if ds[0].NetAmount != 42 {
			t.Fatal("mutating a returned slice must not affect stored state")
		}
		return nil
	})
}

func TestDonationCount(t *testing.T) {
	s := New(0, "treasury")
	ctx := context.Background()

	_ = s.Update(ctx, func(tx ledger.Tx) error {
		for seq := uint64(0); seq < 3; seq++ {
			if err := tx.AppendDonation(ctx, domain.Donation{CampaignID: 1, Seq: seq, Donor: "bob", NetAmount: 1}); err != nil {
				return err
			}
		}
		return nil
	})

	_ = s.View(ctx, func(tx ledger.ReadTx) error {
		if n, _ := tx.DonationCount(ctx, 1); n != 3 {
			t.Fatalf("donation count = %d, want 3", n)
		}
		if n, _ := tx.DonationCount(ctx, 2); n != 0 {
			t.Fatalf("donation count for empty campaign = %d, want 0", n)
		}
		return nil
	})
}
