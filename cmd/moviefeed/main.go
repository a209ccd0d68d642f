// Package main wires together the moviefeed service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pubsubclient "cloud.google.com/go/pubsub"
	gcsclient "cloud.google.com/go/storage"
	"go.uber.org/zap"

	gcsarchive "github.com/moviefeed/moviefeed/internal/archive/gcs"
	localarchive "github.com/moviefeed/moviefeed/internal/archive/local"
	memoryarchive "github.com/moviefeed/moviefeed/internal/archive/memory"
	"github.com/moviefeed/moviefeed/internal/clock/system"
	"github.com/moviefeed/moviefeed/internal/config"
	collyfetch "github.com/moviefeed/moviefeed/internal/fetch/colly"
	"github.com/moviefeed/moviefeed/internal/fetch/headless"
	"github.com/moviefeed/moviefeed/internal/hash/sha256"
	"github.com/moviefeed/moviefeed/internal/id/uuid"
	"github.com/moviefeed/moviefeed/internal/logging"
	"github.com/moviefeed/moviefeed/internal/metrics"
	"github.com/moviefeed/moviefeed/internal/movie"
	memorynotify "github.com/moviefeed/moviefeed/internal/notify/memory"
	pubsubnotify "github.com/moviefeed/moviefeed/internal/notify/pubsub"
	"github.com/moviefeed/moviefeed/internal/omdb"
	"github.com/moviefeed/moviefeed/internal/scrape"
	"github.com/moviefeed/moviefeed/internal/store/postgres"
	"github.com/moviefeed/moviefeed/internal/web"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	store, err := postgres.New(ctx, postgres.Config{
		DSN:      cfg.DB.DSN,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		logger.Fatal("postgres init failed", zap.Error(err))
	}
	defer store.Close()

	archive, err := buildArchive(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("archive init failed", zap.Error(err))
	}

	publisher, err := buildPublisher(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("publisher init failed", zap.Error(err))
	}

	clock := system.New()
	idGen := uuid.New()
	hasher := sha256.New()

	probeFetcher := collyfetch.New(collyfetch.Config{
		UserAgent: cfg.Scrape.UserAgent,
		Timeout:   cfg.HTTPTimeout(),
	})

	// The browser capability is decided once here; the Noop fetcher stands in
	// when it is disabled or fails to start.
	var headlessFetcher movie.PageFetcher = headless.NewNoop()
	useHeadless := false
	if cfg.Headless.Enabled {
		hf, err := headless.NewChromedp(headless.Config{
			UserAgent:         cfg.Scrape.UserAgent,
			NavigationTimeout: time.Duration(cfg.Headless.NavTimeoutSec) * time.Second,
		})
		if err != nil {
			logger.Warn("headless fetcher init failed", zap.Error(err))
		} else {
			headlessFetcher = hf
			useHeadless = true
			defer hf.Close()
		}
	}

	scraper := scrape.New(scrape.Config{
		ChartURL:      cfg.Scrape.ChartURL,
		Timeout:       cfg.HTTPTimeout(),
		ArchivePrefix: cfg.Archive.Prefix,
		Topic:         cfg.PubSub.TopicName,
		UseHeadless:   useHeadless,
	}, scrape.Deps{
		Probe:     probeFetcher,
		Headless:  headlessFetcher,
		Detector:  scrape.NewDetector(0),
		Store:     store,
		Archive:   archive,
		Hasher:    hasher,
		Publisher: publisher,
		Clock:     clock,
		IDGen:     idGen,
		Logger:    logger.Named("scrape"),
	})

	omdbClient := omdb.New(omdb.Config{
		BaseURL: cfg.OMDb.BaseURL,
		APIKey:  cfg.OMDb.APIKey,
		Plot:    cfg.OMDb.Plot,
		Timeout: cfg.HTTPTimeout(),
		Topic:   cfg.PubSub.TopicName,
	}, omdb.Deps{
		Store:     store,
		Publisher: publisher,
		Clock:     clock,
		IDGen:     idGen,
		Logger:    logger.Named("omdb"),
	})

	if cfg.Ingest.OnStart {
		runStartupIngest(ctx, cfg, scraper, omdbClient, logger)
	}

	server := web.NewServer(store, store, scraper, omdbClient, cfg, logger.Named("web"))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func buildArchive(ctx context.Context, cfg config.Config, logger *zap.Logger) (movie.BlobStore, error) {
	switch cfg.Archive.Provider {
	case "off":
		return nil, nil
	case "memory":
		return memoryarchive.NewBlobStore(), nil
	case "local":
		return localarchive.New(localarchive.Config{BaseDir: cfg.Archive.BaseDir})
	case "gcs":
		client, err := gcsclient.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		logger.Info("using gcs archive", zap.String("bucket", cfg.Archive.GCSBucket))
		return gcsarchive.New(client, gcsarchive.Config{Bucket: cfg.Archive.GCSBucket})
	default:
		return nil, fmt.Errorf("unknown archive provider %q", cfg.Archive.Provider)
	}
}

func buildPublisher(ctx context.Context, cfg config.Config, logger *zap.Logger) (movie.Publisher, error) {
	if cfg.PubSub.ProjectID == "" {
		return memorynotify.New(), nil
	}
	client, err := pubsubclient.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub client: %w", err)
	}
	logger.Info("using pubsub notifications", zap.String("topic", cfg.PubSub.TopicName))
	return pubsubnotify.New(client)
}

func runStartupIngest(
	ctx context.Context,
	cfg config.Config,
	scraper *scrape.Scraper,
	omdbClient *omdb.Client,
	logger *zap.Logger,
) {
	rows, err := scraper.ScrapeAndSave(ctx, cfg.Scrape.Limit)
	if err != nil {
		logger.Error("startup scrape failed", zap.Error(err))
	} else {
		logger.Info("startup scrape complete", zap.Int("rows", rows))
	}

	rows, err = omdbClient.FetchPopularMovies(ctx)
	if err != nil {
		logger.Error("startup api ingest failed", zap.Error(err))
	} else {
		logger.Info("startup api ingest complete", zap.Int("rows", rows))
	}
}
