package handlers

import (
	"encoding/json"
	"net/http"

	"crowdfund/internal/domain"
	"crowdfund/internal/middleware"
)

type setChangeFeeRequest struct {
	Fee uint64 `json:"fee"`
}

func (a *App) AdminSetChangeFee(w http.ResponseWriter, r *http.Request) {
	var req setChangeFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	caller := middleware.PrincipalFromContext(r.Context())
	if err := a.Ledger.SetChangeFee(r.Context(), caller, req.Fee); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"change_fee": req.Fee})
}

type setFeeRecipientRequest struct {
	Recipient string `json:"recipient"`
}

func (a *App) AdminSetFeeRecipient(w http.ResponseWriter, r *http.Request) {
	var req setFeeRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Recipient == "" {
		a.error(w, http.StatusUnprocessableEntity, "invalid_request", "recipient must not be empty")
		return
	}
	caller := middleware.PrincipalFromContext(r.Context())
	if err := a.Ledger.SetFeeRecipient(r.Context(), caller, domain.Principal(req.Recipient)); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"recipient": req.Recipient})
}
