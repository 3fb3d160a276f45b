package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/credkit/issuerd/config"
	"github.com/credkit/issuerd/internal/adapters/issuerapi"
	"github.com/credkit/issuerd/internal/adapters/issuerrunner"
	"github.com/credkit/issuerd/internal/adapters/reaper"
	"github.com/credkit/issuerd/internal/adapters/scheduler"
	"github.com/credkit/issuerd/internal/core"
	"github.com/credkit/issuerd/internal/data"
	"github.com/credkit/issuerd/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Payloads    *service.PayloadService
	Issuer      *service.IssuerService
	IssueStatus *service.IssueStatusService
	Jobs        core.IssueJobRepository
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB          *sql.DB
	Redis       redis.UniversalClient
	JobRepo     *data.IssueJobRepo
	SignupRepo  *data.SignupRepo
	StatusCache *data.RedisStatusCacheRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient, cacheCfg config.CacheConfig) *serviceRepositories {
	repos := &serviceRepositories{
		DB:         db,
		Redis:      redisClient,
		JobRepo:    data.NewIssueJobRepo(db, data.RepoConfig{}),
		SignupRepo: data.NewSignupRepo(db),
	}
	if redisClient != nil {
		repos.StatusCache = data.NewRedisStatusCacheRepo(redisClient, cacheCfg.StatusTTL)
	}
	return repos
}

// statusCacheOrNil widens the concrete cache repo to the port; a nil repo
// must map to a nil interface so services skip caching entirely.
func statusCacheOrNil(repos *serviceRepositories) core.StatusCacheRepository {
	if repos.StatusCache == nil {
		return nil
	}
	return repos.StatusCache
}

func newIssuerClient(cfg config.IssuanceConfig, logger *slog.Logger) (*issuerapi.Client, error) {
	return issuerapi.NewClient(issuerapi.ClientOptions{
		Endpoint:   cfg.Endpoint,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     logger,
	})
}

// NewServices wires the issuance services from their repositories and the
// issuance endpoint client.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil {
		return ServiceContainer{}, errors.New("service deps are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB, deps.RedisClient, appCfg.Cache)
	statusCache := statusCacheOrNil(repos)

	payloads, err := service.NewPayloadService(service.PayloadServiceOptions{
		Signups:     repos.SignupRepo,
		Jobs:        repos.JobRepo,
		StatusCache: statusCache,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build payload service: %w", err)
	}

	client, err := newIssuerClient(appCfg.Issuance, logger)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build issuer client: %w", err)
	}

	duplicates, err := service.NewDuplicateMatcher(
		appCfg.Issuance.DuplicateAsSuccess,
		appCfg.Issuance.DuplicateJMESPath,
		appCfg.Issuance.DuplicateValue,
	)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build duplicate matcher: %w", err)
	}

	issuer, err := service.NewIssuerService(service.IssuerServiceOptions{
		Jobs:        repos.JobRepo,
		Client:      client,
		StatusCache: statusCache,
		MaxRetries:  appCfg.IssuerRunner.MaxRetries,
		MaxInFlight: appCfg.IssuerRunner.MaxInFlight,
		Duplicates:  duplicates,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build issuer service: %w", err)
	}

	issueStatus, err := service.NewIssueStatusService(service.IssueStatusServiceOptions{
		Jobs:   repos.JobRepo,
		Cache:  statusCache,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build issue status service: %w", err)
	}

	return ServiceContainer{
		Payloads:    payloads,
		Issuer:      issuer,
		IssueStatus: issueStatus,
		Jobs:        repos.JobRepo,
	}, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				deps.logger.WarnContext(ctx, "dropping background service error",
					"service", descriptor.name, "error", errMsg)
			}
		}
	}()

	deps.logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)

	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))

	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}

		handles = append(handles, backgroundServiceHandle{
			mode: svc.mode,
			name: svc.name,
			done: done,
		})
	}

	return handles
}

func newIssuerRunnerBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeIssuerRunner,
		name: "issuer runner",
		start: func(ctx context.Context) error {
			runner, err := issuerrunner.NewRunner(issuerrunner.RunnerOptions{
				Worker:   deps.cfg.Services.Issuer,
				Interval: deps.cfg.Config.IssuerRunner.PollInterval,
				Logger:   deps.logger,
			})
			if err != nil {
				return err
			}
			return runner.Run(ctx)
		},
	}
}

func newSchedulerBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeScheduler,
		name: "scheduler",
		start: func(ctx context.Context) error {
			runner, err := scheduler.NewRunner(scheduler.RunnerOptions{
				Sweeper:   deps.cfg.Services.Payloads,
				Interval:  deps.cfg.Config.Scheduler.Interval,
				BatchSize: deps.cfg.Config.Scheduler.BatchSize,
				Logger:    deps.logger,
			})
			if err != nil {
				return err
			}
			return runner.Run(ctx)
		},
	}
}

func newReaperBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeReaper,
		name: "reaper",
		start: func(ctx context.Context) error {
			runner, err := reaper.NewRunner(reaper.RunnerOptions{
				Jobs:      deps.cfg.Services.Jobs,
				Interval:  deps.cfg.Config.Reaper.Interval,
				Retention: deps.cfg.Config.Reaper.SucceededLogMaxAge,
				BatchSize: deps.cfg.Config.Reaper.BatchSize,
				Logger:    deps.logger,
			})
			if err != nil {
				return err
			}
			return runner.Run(ctx)
		},
	}
}

func buildBackgroundServices(deps *serviceStartupDeps) []backgroundService {
	if deps == nil {
		return nil
	}
	return []backgroundService{
		newIssuerRunnerBackgroundService(deps),
		newSchedulerBackgroundService(deps),
		newReaperBackgroundService(deps),
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Determine which services are enabled
	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, len(enabledServices)+1)

	deps := &serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	}
	backgrounds := startBackgroundServices(deps, buildBackgroundServices(deps))

	// Wait for shutdown signal or error
	return waitForShutdown(shutdownConfig{
		cancel:      cancel,
		errCh:       errCh,
		logger:      logger,
		backgrounds: backgrounds,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	cancel      context.CancelFunc
	errCh       <-chan error
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel() // Cancel service context before waiting
		gracefulStop(cfg)
		return nil
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel() // Cancel service context before waiting
		gracefulStop(cfg)
		return err
	}
}

// gracefulStop waits for background services to finish.
func gracefulStop(cfg shutdownConfig) {
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
