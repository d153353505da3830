package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
)

// App bundles the ledger service and logger behind the HTTP handlers.
type App struct {
	Ledger *ledger.Service
	Logger zerolog.Logger
}

// NewApp creates the handler container.
func NewApp(svc *ledger.Service, logger zerolog.Logger) *App {
	return &App{Ledger: svc, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// domainError translates ledger errors into HTTP responses. The ledger
// never retries and never partially applies, so every error maps to a
// plain, final status.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrCampaignNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrCampaignEnded),
		errors.Is(err, domain.ErrGoalReached):
		a.error(w, http.StatusConflict, "campaign_closed", err.Error())
	case errors.Is(err, domain.ErrInvalidDeadline),
		errors.Is(err, domain.ErrInvalidTargetAmount),
		errors.Is(err, domain.ErrNoValueSent),
		errors.Is(err, domain.ErrIncorrectFeeAmount),
		errors.Is(err, domain.ErrUnacceptableToken):
		a.error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrFeeTransferFailed),
		errors.Is(err, domain.ErrDonationTransferFailed):
		a.error(w, http.StatusBadGateway, "transfer_failed", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("ledger operation failed")
		a.error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}
