package handlers_test

import (
	"net/http"
	"testing"
)

func TestDonationsCreateNative(t *testing.T) {
	env := newTestEnv(t)
	env.bank.Deposit("bob", 10_000)
	env.createCampaign(t, "alice", 1000)

	rr := env.do(t, http.MethodPost, "/v1/campaigns/0/donations", "bob", map[string]any{
		"amount": 500,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		CampaignID uint64 `json:"campaign_id"`
		DonationID uint64 `json:"donation_id"`
	}
	decodeJSON(t, rr, &resp)
	if resp.DonationID != 0 {
		t.Fatalf("donation id = %d, want 0", resp.DonationID)
	}

	// 5% fee skimmed: creator receives the net 475.
	if got := env.bank.Balance("alice"); got != 475 {
		t.Fatalf("creator balance = %d, want 475", got)
	}
	if got := env.bank.Balance("treasury"); got != 25 {
		t.Fatalf("fee recipient balance = %d, want 25", got)
	}
}

func TestDonationsCreateRequiresPrincipal(t *testing.T) {
	env := newTestEnv(t)
	env.createCampaign(t, "alice", 1000)

	rr := env.do(t, http.MethodPost, "/v1/campaigns/0/donations", "", map[string]any{"amount": 500})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestDonationsCreateZeroAmount(t *testing.T) {
	env := newTestEnv(t)
	env.createCampaign(t, "alice", 1000)

	rr := env.do(t, http.MethodPost, "/v1/campaigns/0/donations", "bob", map[string]any{"amount": 0})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body %s", rr.Code, rr.Body.String())
	}
}

func TestDonationsCreateAfterGoalReached(t *testing.T) {
	env := newTestEnv(t)
	env.bank.Deposit("bob", 10_000)
	env.createCampaign(t, "alice", 95)

	rr := env.do(t, http.MethodPost, "/v1/campaigns/0/donations", "bob", map[string]any{"amount": 100})
	if rr.Code != http.StatusCreated {
		t.Fatalf("first donation: status = %d, body %s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/v1/campaigns/0/donations", "bob", map[string]any{"amount": 1})
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", rr.Code, rr.Body.String())
	}
}

func TestDonationsCreateTransferFailure(t *testing.T) {
	env := newTestEnv(t)
	env.bank.Deposit("bob", 10_000)
	env.bank.SetRejecting("treasury", true)
	env.createCampaign(t, "alice", 1000)

	rr := env.do(t, http.MethodPost, "/v1/campaigns/0/donations", "bob", map[string]any{"amount": 500})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body %s", rr.Code, rr.Body.String())
	}

	// Rolled back: the read model shows no donation.
	rr = env.do(t, http.MethodGet, "/v1/campaigns/0/donations", "", nil)
	var list struct {
		Items []map[string]any `json:"items"`
	}
	decodeJSON(t, rr, &list)
	if len(list.Items) != 0 {
		t.Fatalf("donations = %d, want 0", len(list.Items))
	}
}

func TestDonationsCreateToken(t *testing.T) {
	env := newTestEnv(t)
	env.tokens.Mint("usd-token", "bob", 1_000)
	env.tokens.Approve("usd-token", "bob", 1_000)

	rr := env.do(t, http.MethodPost, "/v1/campaigns", "alice", map[string]any{
		"accepted_asset": "usd-token",
		"title":          "Token drive",
		"target_amount":  10_000,
		"deadline":       env.now + 86_400,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/v1/campaigns/0/donations", "bob", map[string]any{
		"amount":    100,
		"token":     "usd-token",
		"cover_fee": true,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("donate: status = %d, body %s", rr.Code, rr.Body.String())
	}

	// cover_fee: the donor is debited 105 and the creator receives 100.
	if got := env.tokens.BalanceOf("usd-token", "bob"); got != 895 {
		t.Fatalf("donor balance = %d, want 895", got)
	}
	if got := env.tokens.BalanceOf("usd-token", "alice"); got != 100 {
		t.Fatalf("creator balance = %d, want 100", got)
	}
}

func TestDonationsList(t *testing.T) {
	env := newTestEnv(t)
	env.bank.Deposit("bob", 10_000)
	env.createCampaign(t, "alice", 100_000)

	for _, amount := range []int{500, 300} {
		rr := env.do(t, http.MethodPost, "/v1/campaigns/0/donations", "bob", map[string]any{"amount": amount})
		if rr.Code != http.StatusCreated {
			t.Fatalf("donate %d: status = %d", amount, rr.Code)
		}
	}

	rr := env.do(t, http.MethodGet, "/v1/campaigns/0/donations", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var list struct {
		Items []struct {
			DonationID uint64 `json:"donation_id"`
			Donor      string `json:"donor"`
			NetAmount  uint64 `json:"net_amount"`
		} `json:"items"`
	}
	decodeJSON(t, rr, &list)
	if len(list.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(list.Items))
	}
	if list.Items[0].DonationID != 0 || list.Items[0].NetAmount != 475 {
		t.Fatalf("unexpected first donation: %+v", list.Items[0])
	}
	if list.Items[1].DonationID != 1 || list.Items[1].NetAmount != 285 {
		t.Fatalf("unexpected second donation: %+v", list.Items[1])
	}
}
