package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/cfptrack/pkg/config"
	"github.com/umputun/cfptrack/pkg/ingest"
	"github.com/umputun/cfptrack/pkg/notify"
	"github.com/umputun/cfptrack/pkg/repository"
	"github.com/umputun/cfptrack/pkg/scheduler"
	"github.com/umputun/cfptrack/pkg/source"
	"github.com/umputun/cfptrack/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Once   bool   `long:"once" description:"run a single ingestion round and exit"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting cfptrack version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled, or until the single round is done with --once
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if secrets := cfg.Secrets(); len(secrets) > 0 {
		setupLog(opts.Debug, opts.NoColor, secrets...)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	manager, err := makeManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to register sources: %w", err)
	}
	lgr.Printf("[INFO] registered sources: %v", manager.Names())

	ingester := &ingest.Service{
		Manager: manager,
		Merger:  ingest.NewMerger(NewStoreAdapter(repos.CFP), ingest.MergerOpts{}),
	}

	schedParams := scheduler.Params{
		Ingester:       ingester,
		SettingManager: repos.Setting,
		IngestInterval: cfg.Ingestion.Interval,
		NotifyInterval: cfg.Notify.Interval,
		NotifyWindow:   cfg.Notify.Window,
		QueueSize:      cfg.Ingestion.QueueSize,
	}
	if cfg.Notify.SlackWebhook != "" {
		slack := notify.NewSlack(cfg.Notify.SlackWebhook, cfg.Notify.Timeout, cfg.HTTP.Retries)
		schedParams.Notifier = notify.NewService(repos.CFP, slack)
	}
	sched := scheduler.NewScheduler(schedParams)

	if opts.Once {
		res, err := sched.RunIngestion(ctx)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		lgr.Printf("[INFO] fetched %d, inserted %d, updated %d", res.Fetched, res.Inserted, res.Updated)
		return nil
	}

	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, manager, sched, repos.CFP, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeManager registers enabled sources, all of them share one http client
func makeManager(cfg *config.Config) (*ingest.Manager, error) {
	client := source.NewHTTPClient(source.HTTPOpts{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
		Retries:   cfg.HTTP.Retries,
		Pace:      cfg.HTTP.Pace,
	})
	manager := ingest.NewManager(ingest.ManagerOpts{AdapterTimeout: cfg.Ingestion.AdapterTimeout})
	sc := cfg.Sources

	type registration struct {
		enabled bool
		name    string
		adapter func(name string) ingest.Source
	}
	regs := []registration{
		{sc.Call4Papers.Enabled, source.Call4PapersName, func(name string) ingest.Source {
			return source.NewRunner(name, source.NewCall4Papers(client,
				source.Call4PapersOpts{URL: sc.Call4Papers.URL, Horizon: sc.Call4Papers.Horizon}))
		}},
		{sc.ConfsTech.Enabled, source.ConfsTechName, func(name string) ingest.Source {
			return source.NewRunner(name, source.NewConfsTech(client, source.ConfsTechOpts{
				BaseURL: sc.ConfsTech.BaseURL, Year: sc.ConfsTech.Year, Categories: sc.ConfsTech.Categories}))
		}},
		{sc.GitHub.Enabled, source.GitHubEventsName, func(name string) ingest.Source {
			return source.NewRunner(name, source.NewGitHubEvents(client, source.GitHubEventsOpts{
				APIURL: sc.GitHub.APIURL, Token: sc.GitHub.Token, Repos: sc.GitHub.Repos}))
		}},
		// registered as dev_events, records carry "dev.events" as their source
		{sc.DevEvents.Enabled, "dev_events", func(name string) ingest.Source {
			return source.NewRunner(name, source.NewDevEvents(client, source.DevEventsOpts{URL: sc.DevEvents.URL}))
		}},
		{sc.PaperCall.Enabled, source.PaperCallName, func(name string) ingest.Source {
			return source.NewRunner(name, source.NewPaperCall(client, source.PaperCallOpts{URL: sc.PaperCall.URL}))
		}},
	}

	for _, r := range regs {
		if !r.enabled {
			lgr.Printf("[DEBUG] source %s disabled", r.name)
			continue
		}
		if err := manager.Register(r.name, r.adapter(r.name)); err != nil {
			return nil, fmt.Errorf("register %s: %w", r.name, err)
		}
	}
	return manager, nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
