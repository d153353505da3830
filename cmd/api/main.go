package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"crowdfund/internal/domain"
	"crowdfund/internal/gate"
	"crowdfund/internal/http/handlers"
	"crowdfund/internal/http/httpapi"
	"crowdfund/internal/infra"
	"crowdfund/internal/ledger"
	"crowdfund/internal/store/memstore"
	"crowdfund/internal/store/pgstore"
	"crowdfund/internal/treasury"
)

// operator is the spender identity the ledger presents to the token bank.
const operator = domain.Principal("crowdfund-ledger")

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// DATABASE_URL selects the transactional Postgres store; without it
	// the ledger runs on the in-memory store.
	var store ledger.Store
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()

		pg := pgstore.New(dbpool)
		if err := pg.Init(ctx, cfg.ChangeFee, domain.Principal(cfg.FeeRecipient)); err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize ledger schema")
		}
		store = pg
		logger.Info().Msg("using postgres store")
	} else {
		store = memstore.New(cfg.ChangeFee, domain.Principal(cfg.FeeRecipient))
		logger.Info().Msg("using in-memory store")
	}

	fees, err := ledger.NewFeeSchedule(uint64(cfg.DonationFeeBps))
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid donation fee rate")
	}

	bank := treasury.NewBank()
	tokens := treasury.NewTokenBank(operator)

	svc := ledger.New(ledger.Config{
		Store:  store,
		Gate:   gate.New(domain.Principal(cfg.Owner), bank, tokens, logger),
		Fees:   fees,
		Sink:   ledger.LogSink(logger),
		Logger: logger,
	})

	app := handlers.NewApp(svc, logger)
	router := httpapi.NewRouter(app, logger, httpapi.RouterConfig{
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
