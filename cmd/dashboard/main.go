package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"TradingDashboard/internal/collector"
	"TradingDashboard/internal/config"
	"TradingDashboard/internal/dashboard"
	"TradingDashboard/internal/recorder"
	"TradingDashboard/internal/render"
	"TradingDashboard/internal/scheduler"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:     "dashboard",
		HelpName: "dashboard",
		Usage:    "Build a two-panel trading dashboard: candles with a band above a volume trace",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "eg. ./configs/config.yaml",
				Value:   "configs/config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed for the synthetic generator (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "Build the dashboard once and print the fitted axes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "png",
						Usage: "eg. ./dashboard.png",
					},
					&cli.StringFlag{
						Name:  "json",
						Usage: "eg. ./snapshot.json",
					},
				},
				Action: renderAction,
			},
			{
				Name:   "serve",
				Usage:  "Rebuild the dashboard on the configured cron schedule",
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.IsSet("seed") {
		cfg.Generator.Seed = c.Int64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return cfg, nil
}

// newBuilder wires the configured sources into a dashboard builder.
func newBuilder(cfg *config.Config) (*dashboard.Builder, error) {
	origin, err := cfg.DateOrigin()
	if err != nil {
		return nil, err
	}
	ohlcBucket, err := cfg.OHLCBucket()
	if err != nil {
		return nil, err
	}
	traceBucket, err := cfg.TraceBucket()
	if err != nil {
		return nil, err
	}
	traceOffset, err := cfg.TraceOffset()
	if err != nil {
		return nil, err
	}

	gen := collector.NewSyntheticGenerator(cfg.Generator.Seed)
	var ohlc collector.OHLCSource
	switch cfg.OHLC.Source {
	case "yahoo":
		ohlc = collector.NewYahooSource(cfg.OHLC.Symbol, origin, cfg.Proxy)
	case "rest":
		ohlc = collector.NewRESTSource(cfg.OHLC.BaseURL, cfg.OHLC.APIKey, cfg.OHLC.Symbol, origin, cfg.Proxy)
	default:
		ohlc = gen
	}
	log.Infof("ohlc source: %s, trace source: %s", ohlc.Name(), gen.Name())

	shape := collector.TraceShape{
		Bucket: traceBucket,
		Scale:  cfg.Trace.Scale,
		Origin: float64(traceOffset.Milliseconds()),
	}

	opts := dashboard.Options{
		Title:            cfg.Dashboard.Title,
		DateOrigin:       origin,
		PrimaryRowHeight: cfg.Dashboard.PrimaryRowHeight,
		OHLCPoints:       cfg.OHLC.Points,
		OHLCBucket:       ohlcBucket,
		BandMode:         dashboard.BandMode(cfg.OHLC.BandMode),
		BandOffset:       *cfg.OHLC.BandOffset,
		BollPeriod:       cfg.OHLC.BollPeriod,
		BollDevs:         cfg.OHLC.BollDevs,
		TracePoints:      cfg.Trace.Points,
		TraceShape:       shape,
		MarginFraction:   *cfg.View.MarginFraction,
	}
	return dashboard.NewBuilder(ohlc, gen, opts), nil
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warnf("init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func renderAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}

	snap, buildErr := b.Run(c.Context)
	if snap == nil {
		return buildErr
	}
	if buildErr != nil {
		log.Warnf("dashboard built with errors: %v", buildErr)
	}
	render.Summary(os.Stdout, snap)

	if path := c.String("png"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		defer f.Close()
		if err := render.PNG(f, snap.Dashboard, render.Options{Width: cfg.Output.Width, Height: cfg.Output.Height}); err != nil {
			return fmt.Errorf("render png: %w", err)
		}
		log.Infof("png written: %s", path)
	}
	if path := c.String("json"); path != "" {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		log.Infof("snapshot written: %s", path)
	}
	return buildErr
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Schedule.RefreshCron == "" {
		return fmt.Errorf("schedule.refresh_cron is required for serve")
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	rec := newRecorder(cfg)
	defer rec.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, b, rec, cfg.Output.PNGPath,
		render.Options{Width: cfg.Output.Width, Height: cfg.Output.Height})
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, refreshing now")
		sched.RunAsync()
	}

	log.Info("dashboard service is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()
	return nil
}
