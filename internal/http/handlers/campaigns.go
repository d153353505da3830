package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"crowdfund/internal/domain"
	"crowdfund/internal/middleware"
)

type createCampaignRequest struct {
	AcceptedAsset string `json:"accepted_asset"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	TargetAmount  uint64 `json:"target_amount"`
	Deadline      int64  `json:"deadline"`
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	creator := middleware.PrincipalFromContext(r.Context())
	if creator == "" {
		a.error(w, http.StatusUnauthorized, "unauthenticated", "principal required")
		return
	}
	id, err := a.Ledger.CreateCampaign(r.Context(), creator, domain.Asset(req.AcceptedAsset),
		req.Title, req.Description, req.ImageURL, req.TargetAmount, req.Deadline)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": id})
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Ledger.ListCampaigns(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	now := a.Ledger.Now()
	items := make([]map[string]any, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, campaignView(c, now))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	c, err := a.Ledger.GetCampaign(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if !c.Exists() {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}
	a.json(w, http.StatusOK, campaignView(c, a.Ledger.Now()))
}

type changeRequest struct {
	NewDeadline int64  `json:"new_deadline"`
	NewTarget   uint64 `json:"new_target"`
	Reason      string `json:"reason"`
	PaidFee     uint64 `json:"paid_fee"`
}

func (a *App) CampaignsChangeDeadline(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	var req changeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	caller := middleware.PrincipalFromContext(r.Context())
	if err := a.Ledger.ChangeDeadline(r.Context(), caller, id, req.NewDeadline, req.Reason, req.PaidFee); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "deadline": req.NewDeadline})
}

func (a *App) CampaignsChangeTarget(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	var req changeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	caller := middleware.PrincipalFromContext(r.Context())
	if err := a.Ledger.ChangeTargetAmount(r.Context(), caller, id, req.NewTarget, req.Reason, req.PaidFee); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "target_amount": req.NewTarget})
}

type removeRequest struct {
	Reason string `json:"reason"`
}

func (a *App) CampaignsRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	var req removeRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	caller := middleware.PrincipalFromContext(r.Context())
	if err := a.Ledger.RemoveCampaign(r.Context(), caller, id, req.Reason); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) campaignID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid campaign id")
		return 0, false
	}
	return id, true
}

func campaignView(c domain.Campaign, now int64) map[string]any {
	return map[string]any{
		"id":               c.ID,
		"creator":          c.Creator,
		"accepted_asset":   c.AcceptedAsset,
		"title":            c.Title,
		"description":      c.Description,
		"image_url":        c.ImageURL,
		"target_amount":    c.TargetAmount,
		"deadline":         c.Deadline,
		"amount_collected": c.AmountCollected,
		"status":           c.StatusAt(now),
	}
}
