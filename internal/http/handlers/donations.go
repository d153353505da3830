package handlers

import (
	"encoding/json"
	"net/http"

	"crowdfund/internal/domain"
	"crowdfund/internal/middleware"
)

type donationRequest struct {
	Amount   uint64 `json:"amount"`
	Token    string `json:"token"`
	CoverFee bool   `json:"cover_fee"`
}

// DonationsCreate routes to the native or token path by the presence of
// the token field. The returned id is the donation's sequence number in
// the campaign ledger.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	donor := middleware.PrincipalFromContext(r.Context())
	if donor == "" {
		a.error(w, http.StatusUnauthorized, "unauthenticated", "principal required")
		return
	}

	var seq uint64
	var err error
	if req.Token == "" {
		seq, err = a.Ledger.DonateNative(r.Context(), donor, id, req.Amount)
	} else {
		seq, err = a.Ledger.DonateToken(r.Context(), donor, id, domain.Asset(req.Token), req.Amount, req.CoverFee)
	}
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"campaign_id": id, "donation_id": seq})
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	donations, err := a.Ledger.GetDonations(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(donations))
	for _, d := range donations {
		items = append(items, map[string]any{
			"donation_id": d.Seq,
			"donor":       d.Donor,
			"net_amount":  d.NetAmount,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"campaign_id": id, "items": items})
}
