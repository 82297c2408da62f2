package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"creative_catalog/internal/config"
	"creative_catalog/internal/domain"
	"creative_catalog/internal/projection/airtable"
	"creative_catalog/internal/publisher"
	"creative_catalog/internal/service"
	"creative_catalog/internal/source/meta"
	"creative_catalog/internal/storage/postgres"
	"creative_catalog/internal/store/github"
)

const (
	exitOK    = 0
	exitRun   = 1
	exitFatal = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		usage()
		return exitFatal
	}

	switch os.Args[1] {
	case "sync":
		return runSync(os.Args[2:])
	case "resolve":
		return runResolve(os.Args[2:])
	default:
		usage()
		return exitFatal
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: adsync <sync|resolve> [flags]")
	fmt.Fprintln(os.Stderr, "  sync    --accounts <id,id,...> [--prune] [--config config.yaml]")
	fmt.Fprintln(os.Stderr, "  resolve --ad-id <id> [--config config.yaml]")
}

func runSync(args []string) int {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	accountsArg := fs.String("accounts", "", "comma-separated account ids to sync (default: all configured)")
	prune := fs.Bool("prune", false, "clear URL fields on table rows whose ad was not seen this run")
	fs.Parse(args)

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return exitFatal
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		return exitFatal
	}

	logger = setupLogger(cfg.LogLevel)

	accounts, err := selectAccounts(cfg.Sync.Accounts, *accountsArg)
	if err != nil {
		logger.Error("invalid --accounts", "error", err)
		return exitFatal
	}

	source := meta.New(meta.Config{
		BaseURL:        cfg.Meta.BaseURL,
		AccessToken:    cfg.Meta.AccessToken,
		PageSize:       cfg.Meta.PageSize,
		Timeout:        cfg.Meta.Timeout,
		MediaTimeout:   cfg.Meta.MediaTimeout,
		MaxAttempts:    cfg.Meta.Retry.MaxAttempts,
		InitialBackoff: cfg.Meta.Retry.InitialBackoff,
		MaxBackoff:     cfg.Meta.Retry.MaxBackoff,
	}, logger)

	store := github.New(github.Config{
		Owner:          cfg.Store.Owner,
		Repo:           cfg.Store.Repo,
		Branch:         cfg.Store.Branch,
		Token:          cfg.Store.Token,
		LocalPath:      cfg.Store.LocalPath,
		RawHost:        cfg.Store.RawHost,
		RemoteURL:      cfg.Store.RemoteURL,
		Timeout:        cfg.Store.Timeout,
		MaxAttempts:    cfg.Store.Retry.MaxAttempts,
		InitialBackoff: cfg.Store.Retry.InitialBackoff,
		MaxBackoff:     cfg.Store.Retry.MaxBackoff,
	}, logger)

	sink := airtable.NewSink(airtable.Config{
		BaseURL:        cfg.Airtable.BaseURL,
		Token:          cfg.Airtable.Token,
		BaseID:         cfg.Airtable.BaseID,
		TableID:        cfg.Airtable.TableID,
		BatchSize:      cfg.Airtable.BatchSize,
		BatchDelay:     cfg.Airtable.BatchDelay,
		Timeout:        cfg.Airtable.Timeout,
		MaxAttempts:    cfg.Airtable.Retry.MaxAttempts,
		InitialBackoff: cfg.Airtable.Retry.InitialBackoff,
		MaxBackoff:     cfg.Airtable.Retry.MaxBackoff,
	}, logger)

	var events service.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			return exitFatal
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	var history service.RunHistory
	if cfg.Database.Enabled() {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return exitFatal
		}
		defer db.Close()
		history = postgres.NewHistory(db)
	}

	syncService := service.NewSyncService(
		source,
		store,
		sink,
		events,
		history,
		accounts,
		cfg.Meta.LibraryBase,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	report, err := syncService.Run(ctx, *prune)
	if err != nil {
		if meta.IsAuthError(err) {
			logger.Error("access token rejected", "error", err)
			return exitFatal
		}
		logger.Error("sync aborted", "error", err)
		return exitRun
	}

	if report.HasFailures() {
		return exitRun
	}
	return exitOK
}

// runResolve resolves one ad's media reference without downloading or
// publishing anything. Handy for debugging the priority chain.
func runResolve(args []string) int {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	adID := fs.String("ad-id", "", "ad id to resolve")
	fs.Parse(args)

	logger := setupLogger("error")

	if *adID == "" {
		fmt.Fprintln(os.Stderr, "resolve: --ad-id is required")
		return exitFatal
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return exitFatal
	}
	if cfg.Meta.AccessToken == "" {
		logger.Error("meta.access_token (META_ACCESS_TOKEN) is required")
		return exitFatal
	}

	source := meta.New(meta.Config{
		BaseURL:        cfg.Meta.BaseURL,
		AccessToken:    cfg.Meta.AccessToken,
		PageSize:       cfg.Meta.PageSize,
		Timeout:        cfg.Meta.Timeout,
		MediaTimeout:   cfg.Meta.MediaTimeout,
		MaxAttempts:    cfg.Meta.Retry.MaxAttempts,
		InitialBackoff: cfg.Meta.Retry.InitialBackoff,
		MaxBackoff:     cfg.Meta.Retry.MaxBackoff,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	media, err := source.ResolveMedia(ctx, domain.Ad{ID: *adID})
	if err != nil {
		if meta.IsAuthError(err) {
			logger.Error("access token rejected", "error", err)
			return exitFatal
		}
		fmt.Fprintf(os.Stderr, "resolve %s: %v\n", *adID, err)
		return exitRun
	}

	out, _ := json.MarshalIndent(map[string]string{
		"ad_id":      *adID,
		"kind":       string(media.Kind),
		"source_url": media.SourceURL,
		"extension":  media.Extension,
	}, "", "  ")
	fmt.Println(string(out))
	return exitOK
}

// selectAccounts filters the configured accounts by the --accounts
// flag. Unknown ids are a configuration error.
func selectAccounts(configured []domain.Account, arg string) ([]domain.Account, error) {
	if arg == "" {
		return configured, nil
	}

	byID := make(map[string]domain.Account, len(configured))
	for _, a := range configured {
		byID[a.ID] = a
	}

	var selected []domain.Account
	for _, id := range strings.Split(arg, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		account, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("account %q is not configured", id)
		}
		selected = append(selected, account)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no accounts selected")
	}
	return selected, nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
