package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hedgepair/hedgepair/config"
	"github.com/hedgepair/hedgepair/internal/adapters/marketsim"
	"github.com/hedgepair/hedgepair/internal/adapters/notify"
	"github.com/hedgepair/hedgepair/internal/adapters/polymarket"
	"github.com/hedgepair/hedgepair/internal/adapters/storage"
	"github.com/hedgepair/hedgepair/internal/engine"
	"github.com/hedgepair/hedgepair/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	sim := flag.Bool("sim", false, "trade against the simulator instead of the live CLOB")
	once := flag.Bool("once", false, "run one tick and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print position tables on fills (default: compact 1-line)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	useSim := *sim || cfg.Market.ConditionID == ""

	slog.Info("hedgepair starting",
		"config", *configPath,
		"interval", cfg.TickInterval(),
		"sim", useSim,
		"once", *once,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	books, settlement, err := buildBookProvider(ctx, cfg, useSim)
	if err != nil {
		slog.Error("failed to set up market", "err", err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	notifier := notify.NewConsole(*table)

	eng := engine.New(*cfg, books, store, notifier)
	eng.SetSettlement(settlement)

	if err := run(ctx, eng, books, cfg.TickInterval(), *once); err != nil {
		slog.Error("engine exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("hedgepair stopped cleanly")
}

// buildBookProvider wires either the simulator or the live CLOB feed and
// returns the market's settlement time alongside it.
func buildBookProvider(ctx context.Context, cfg *config.Config, useSim bool) (ports.BookProvider, time.Time, error) {
	if useSim {
		window := time.Duration(cfg.Market.SettlementMinutes) * time.Minute
		s := marketsim.New(0.45, window, 0)
		return s, s.Settlement(), nil
	}

	client := polymarket.NewClient(cfg.API.CLOBBase)

	// Resolve the market even when token IDs are configured: the settlement
	// time always comes from the CLOB.
	info, err := client.FetchMarket(ctx, cfg.Market.ConditionID)
	if err != nil {
		return nil, time.Time{}, err
	}

	yesID, noID := cfg.Market.YesTokenID, cfg.Market.NoTokenID
	if yesID == "" || noID == "" {
		yesID, noID = info.YesTokenID, info.NoTokenID
	}

	return polymarket.NewBookProvider(client, yesID, noID), info.EndDate, nil
}

// run drives the tick loop until the engine stops itself, the context is
// canceled, or once is set.
func run(ctx context.Context, eng *engine.Engine, books ports.BookProvider, interval time.Duration, once bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		book, err := books.FetchOrderBook(ctx)
		if err != nil {
			slog.Warn("book fetch failed, skipping tick", "err", err)
		} else {
			if _, err := eng.Tick(ctx, book); err != nil {
				return err
			}
			if eng.Stopped() || once {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
