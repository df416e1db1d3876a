package control

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/config"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/events"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/health"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage/memory"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage/postgres"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/transport"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading/cache"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/network"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/notify"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/platform"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/report"

	redisclient "github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/redis"

	"github.com/pressly/goose/v3"
)

// Service wires the loading subsystem together and manages its
// lifecycle: transports, caches, the network monitor, the loader, and
// the health server.
type Service struct {
	cfg          config.AppConfig
	loader       *loading.Loader
	monitor      *network.Monitor
	broadcaster  *events.Broadcaster
	healthServer *health.Server
	redisClient  *redisclient.Client
	db           *postgres.DB
	log          *slog.Logger
	cancel       context.CancelFunc
}

// NewService creates a Service with all dependencies initialized. A nil
// plat defaults to a permanently-online host.
func NewService(cfg config.AppConfig, plat platform.Platform) (*Service, error) {
	log := slog.Default()
	if plat == nil {
		plat = platform.AlwaysOnline{}
	}

	binary := transport.NewBinaryTransport(cfg.Assets.BaseURL)
	data := transport.NewDataTransport(cfg.Data.BaseURL)
	broadcaster := events.NewBroadcaster()
	notifier := notify.NewSlogSink(log)
	reporter := report.NewSlogReporter(log)

	monitor := network.NewMonitor(cfg.Network, binary, notifier, log)
	monitor.SetOnline(plat.IsOnline())
	plat.OnConnectivityChange(monitor.SetOnline)

	// 1. Preference storage: postgres when configured, then redis,
	// then in-memory.
	var prefs storage.PreferenceRepository
	var db *postgres.DB
	var redisClient *redisclient.Client

	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		prefs = redisclient.NewPreferenceRepo(redisClient)
		slog.Info("Using Redis preference storage")
	}

	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		prefs = postgres.NewPreferenceRepo(db)
		slog.Info("Using PostgreSQL preference storage")
	}

	if prefs == nil {
		prefs = memory.NewPreferenceRepo()
		slog.Info("Using Memory preference storage")
	}

	// 2. Locale cache: shared redis when available, per-process
	// otherwise.
	var locales cache.LocaleCache
	if redisClient != nil {
		locales = cache.NewRedisLocaleCache(redisClient, log)
	}

	loader := loading.New(loading.Config{
		DataMaxRetries:  cfg.Data.MaxRetries,
		DataTTL:         cfg.Data.CacheTTL,
		DefaultLanguage: cfg.Data.DefaultLanguage,
	}, loading.Deps{
		Binary:      binary,
		Data:        data,
		Locales:     locales,
		Hints:       monitor,
		Events:      broadcaster,
		Reporter:    reporter,
		Preferences: prefs,
		Log:         log,
	})

	svc := &Service{
		cfg:         cfg,
		loader:      loader,
		monitor:     monitor,
		broadcaster: broadcaster,
		redisClient: redisClient,
		db:          db,
		log:         log,
	}
	svc.healthServer = health.NewServer(svc, cfg.Server.Port)

	return svc, nil
}

// Loader returns the resource loader.
func (s *Service) Loader() *loading.Loader { return s.loader }

// Monitor returns the network quality monitor.
func (s *Service) Monitor() *network.Monitor { return s.monitor }

// Events returns the loading state broadcaster.
func (s *Service) Events() *events.Broadcaster { return s.broadcaster }

// Snapshot implements health.StatusSource.
func (s *Service) Snapshot() health.Status {
	return health.Status{
		Online:          s.monitor.Online(),
		Quality:         s.monitor.Quality().String(),
		CachedResources: s.loader.Resources().Len(),
	}
}

// Start launches the network monitor, the health server, and a
// background warm-up of the configured language datasets.
func (s *Service) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go s.monitor.Start(runCtx)

	go func() {
		s.log.Info("Health server listening", "port", s.cfg.Server.Port)
		if err := s.healthServer.Start(); err != nil && err != http.ErrServerClosed {
			s.log.Error("Health server failed", "error", err)
		}
	}()

	if langs := s.cfg.Data.Languages; len(langs) > 0 {
		go func() {
			res := s.loader.PreloadLanguages(runCtx, langs)
			s.log.Info("Language warm-up finished",
				"succeeded", res.SuccessCount,
				"failed", res.FailureCount,
				"total", res.Total)
		}()
	}

	return nil
}

// Stop shuts down the health server and releases storage handles.
func (s *Service) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	if err := s.healthServer.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop health server: %w", err)
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.log.Warn("Failed to close redis client", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Warn("Failed to close database", "error", err)
		}
	}

	s.log.Info("Loader service stopped")
	return nil
}
