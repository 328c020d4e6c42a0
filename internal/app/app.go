package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/tournament-registration/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/metrics"
	"github.com/riskibarqy/tournament-registration/internal/platform/resilience"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App wires stores, the change feed and the use cases. The api binary serves
// it over HTTP and the maintenance binary runs its sweeps directly.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	stores         *Stores
	feed           *changeFeed
	metrics        *metrics.Registration
	metricsHandler http.Handler

	Profiles     *usecase.ProfileService
	Registrar    *usecase.Registrar
	Resolver     *usecase.TeamResolver
	Guard        *usecase.DuplicateGuard
	Linkage      *usecase.LinkageService
	Registration *usecase.RegistrationService
	Payments     *usecase.PaymentService
	TeamAdmin    *usecase.TeamAdminService
	Dashboard    *usecase.DashboardService
	Reconcile    *usecase.ReconcileService
	Migration    *usecase.MigrationService

	closers []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{cfg: cfg, logger: logger}

	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.metrics = metrics.New(registry)
		a.metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.stores = stores
	a.closers = append(a.closers, stores.Close)

	idGen := idgen.NewUUIDGenerator()
	feed, err := newChangeFeed(ctx, cfg, idGen, logger)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	a.feed = feed
	a.closers = append(a.closers, feed.close)

	notifier := feed.notifier
	a.Profiles = usecase.NewProfileService(stores.Profiles, logger, a.metrics)
	a.Registrar = usecase.NewRegistrar(stores.Teams, stores.TeamLogs, stores.Participants, a.Profiles, idGen, notifier, a.metrics, logger)
	a.Resolver = usecase.NewTeamResolver(stores.Teams)
	a.Guard = usecase.NewDuplicateGuard(stores.Teams)
	a.Linkage = usecase.NewLinkageService(a.Resolver, a.Registrar, stores.Participants, stores.Roster, idGen, notifier, a.metrics, logger.With("component", "linkage"))
	if cfg.QStashEnabled {
		publisher, err := jobqueue.NewPublisher(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}, jobqueue.Config{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          10 * time.Second,
			Delay:            cfg.QStashRepairDelay,
			CircuitBreaker:   resilience.DefaultCircuitBreakerConfig(),
		}, logger.With("component", "jobqueue"))
		if err != nil {
			_ = a.Close(context.Background())
			return nil, err
		}
		a.Linkage.SetRepairScheduler(publisher)
	}
	a.Registration = usecase.NewRegistrationService(a.Registrar, a.Resolver, a.Guard, a.Linkage, cfg.AuthRequireGoogleForTeams, a.metrics, logger)
	a.Payments = usecase.NewPaymentService(stores.Teams, stores.TeamLogs, idGen, nil, notifier, a.metrics, logger)
	a.TeamAdmin = usecase.NewTeamAdminService(stores.Teams, stores.TeamLogs, idGen, nil, notifier, logger)
	a.Dashboard = usecase.NewDashboardService(stores.Teams, feed.hub, logger)
	a.Reconcile = usecase.NewReconcileService(stores.Teams, stores.Roster, stores.Participants, idGen, cfg.ReconcileWorkers, notifier, a.metrics, logger.With("component", "reconcile"))
	a.Migration = usecase.NewMigrationService(stores.Legacy, stores.Participants, a.Registrar, a.Resolver, a.Linkage, cfg.MigrationWorkers, logger.With("component", "migration"))

	return a, nil
}

// NewHTTPServer builds the API server. Closing the App also releases the
// token verifier's cache connection.
func (a *App) NewHTTPServer(ctx context.Context) (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	verifier, closeVerifier, err := newTokenVerifier(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeVerifier)

	handler := httpapi.NewHandler(
		a.Registration,
		a.Linkage,
		a.Guard,
		a.Resolver,
		a.Payments,
		a.TeamAdmin,
		a.Dashboard,
		a.Reconcile,
		a.Migration,
		a.Profiles,
		a.logger,
	)
	router := httpapi.NewRouter(
		handler,
		verifier,
		a.logger,
		a.metricsHandler,
		a.cfg.CORSAllowedOrigins,
		a.cfg.AdminUserIDs,
		a.cfg.InternalJobToken,
	)

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
