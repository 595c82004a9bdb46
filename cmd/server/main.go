package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/veldpay/methods-server/internal/api"
	"github.com/veldpay/methods-server/internal/apiconfig"
	"github.com/veldpay/methods-server/internal/config"
	"github.com/veldpay/methods-server/internal/feequote"
	"github.com/veldpay/methods-server/internal/fees"
	"github.com/veldpay/methods-server/internal/gateway"
	"github.com/veldpay/methods-server/internal/psp/refresh"
	"github.com/veldpay/methods-server/internal/session"
	"github.com/veldpay/methods-server/internal/session/storage/inmem"
	"github.com/veldpay/methods-server/internal/storage/cache"
	"github.com/veldpay/methods-server/internal/storage/postgres"
	"github.com/veldpay/methods-server/internal/task"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the PostgreSQL storage driver and wrap it into the caching one
	log.Info().Msg("initializing database connection...")
	postgresDriver := postgres.New(cfg.PostgresDSN)
	if err := postgresDriver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the database connection")
	}
	defer postgresDriver.Close()
	driver := cache.New(postgresDriver)
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the caching storage driver")
	}
	defer driver.Close()

	// Initialize the in-memory session store and schedule a task that purges expired sessions
	sessionStore, err := inmem.New()
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the session store")
	}
	purgingTask := task.NewRepeating(func() {
		n, err := sessionStore.PurgeExpired(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("could not purge expired sessions")
		} else if n > 0 {
			log.Info().Int("amount", n).Msg("purged expired sessions")
		}
	}, time.Minute)
	purgingTask.Start()
	defer purgingTask.Stop(true)

	// Create the session lifecycle manager on top of the card gateway client
	gatewayClient := gateway.New(cfg.GatewayBaseURL, cfg.GatewayAPIKey, cfg.ClientTimeout)
	sessions := session.NewManager(driver.PaymentMethods(), sessionStore, gatewayClient, session.URLConfig{
		CheckoutBase:         cfg.CheckoutBaseURL,
		OutcomeSuffix:        cfg.CheckoutOutcomeSuffix,
		CancelSuffix:         cfg.CheckoutCancelSuffix,
		NotificationTemplate: cfg.SessionNotificationURL,
	}, cfg.SessionTTL)

	// Create the fee aggregation engine on top of the fee calculator client
	feeEngine := fees.NewEngine(driver.PaymentMethods(), feequote.New(cfg.FeeCalculatorURL, cfg.ClientTimeout))

	// Create the PSP catalog refresher, run it once and schedule its repeating task
	refresher := refresh.New(apiconfig.New(cfg.PSPRegistryURL, cfg.ClientTimeout), driver.PSPs())
	refreshCatalog := func() {
		n, err := refresher.Refresh(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("could not refresh the PSP catalog")
		} else {
			log.Info().Int("amount", n).Msg("refreshed the PSP catalog")
		}
	}
	refreshCatalog()
	refreshingTask := task.NewRepeating(refreshCatalog, cfg.PSPRefreshInterval)
	refreshingTask.Start()
	defer refreshingTask.Stop(false)

	// Start up the API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the API...")
	apiService := &api.Service{
		Config:   cfg,
		Storage:  driver,
		Sessions: sessions,
		Fees:     feeEngine,
	}
	apiErrs := make(chan error, 1)
	apiService.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the API...")
		apiService.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
