package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"git-commander/config"
	_ "git-commander/docs" // Swagger docs
	"git-commander/internal/crawler"
	"git-commander/internal/httpserver"
	logNotifier "git-commander/internal/notifier/logging"
	tgNotifier "git-commander/internal/notifier/telegram"
	"git-commander/pkg/github"
	"git-commander/pkg/gitio"
	"git-commander/pkg/log"
	"git-commander/pkg/scheduler"
	"git-commander/pkg/telegram"
)

// @title       Git Commander API
// @description Polls GitHub event feeds and relays new activity to chat.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Initializing Github API bot.")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	for _, w := range cfg.Warnings {
		logger.Warn(ctx, w)
	}

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 4. Crawler
	feedClient := github.NewClient(github.Config{
		BaseURL:       cfg.Git.APIURL,
		Token:         cfg.Git.Token,
		TokenInHeader: cfg.Git.TokenInHeader,
		Timeout:       cfg.Git.RequestTimeout,
		RatePerSecond: cfg.Git.RatePerSecond,
		Burst:         cfg.Git.Burst,
	})

	var shortener crawler.Shortener
	if cfg.Shortener.Enabled {
		shortener = gitio.NewClient(cfg.Shortener.URL, cfg.Shortener.Timeout)
	} else {
		logger.Info(ctx, "URL shortening disabled, announcing full repository URLs")
	}

	resources := resourcesFromConfig(cfg.Git)
	crawlerUC, err := crawler.New(logger, feedClient, shortener, crawler.Config{
		Resources:     resources,
		WebURL:        cfg.Git.WebURL,
		Recency:       cfg.Git.Recency,
		SeenGrace:     cfg.Git.SeenGrace,
		SeenCapacity:  cfg.Git.SeenCapacity,
		MaxConcurrent: cfg.Git.MaxConcurrent,
		Registerer:    registry,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize crawler: ", err)
		os.Exit(1)
	}
	logger.Infof(ctx, "Watching %d resource(s), polling every %s, recency %s",
		len(resources), cfg.Git.Interval, cfg.Git.Recency)

	// 5. Consumers
	crawlerUC.Register(logNotifier.New(logger))
	var announcer *tgNotifier.Announcer
	if cfg.Telegram.BotToken != "" {
		announcer, err = tgNotifier.New(logger, telegram.NewBot(cfg.Telegram.BotToken), tgNotifier.Config{
			ChatIDs:  cfg.Telegram.ChatIDs,
			LineRate: cfg.Telegram.LineRate,
			QueueLen: cfg.Telegram.QueueLen,
		})
		if err != nil {
			logger.Warnf(ctx, "Telegram announcer disabled: %v", err)
			announcer = nil
		} else {
			crawlerUC.Register(announcer)
			logger.Infof(ctx, "Telegram announcer enabled for %d chat(s)", len(cfg.Telegram.ChatIDs))
		}
	}

	// 6. Single cycle mode
	if cfg.Git.RunOnce {
		report := crawlerUC.RunCycle(ctx)
		if announcer != nil {
			drain(ctx, announcer, drainTimeout)
		}
		logger.Infof(ctx, "Single cycle finished: %d event(s) dispatched", report.Dispatched)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	if announcer != nil {
		g.Go(func() error {
			announcer.Run(gctx)
			return nil
		})
	}

	// 7. Scheduler
	sched := scheduler.New(logger, func(runCtx context.Context) {
		crawlerUC.RunCycle(runCtx)
	})
	if err := sched.Start(gctx, cfg.Git.Interval, true); err != nil {
		logger.Error(ctx, "Failed to start scheduler: ", err)
		os.Exit(1)
	}

	// 8. HTTP Server
	if cfg.HTTPServer.Enabled {
		httpServer, err := httpserver.New(logger, httpserver.Config{
			Logger:      logger,
			Port:        cfg.HTTPServer.Port,
			Mode:        cfg.HTTPServer.Mode,
			Environment: cfg.Environment.Name,
			Crawler:     crawlerUC,
			Gatherer:    registry,
		})
		if err != nil {
			logger.Error(ctx, "Failed to initialize HTTP server: ", err)
			os.Exit(1)
		}
		g.Go(func() error {
			return httpServer.Run(gctx)
		})
	}

	// 9. Run until a signal arrives or a component fails
	<-gctx.Done()
	sched.Stop()
	err = g.Wait()

	// Announcements queued by the last cycle are sent before exiting.
	if announcer != nil {
		drain(ctx, announcer, drainTimeout)
	}
	if err != nil {
		logger.Error(ctx, "Stopped with error: ", err)
		os.Exit(1)
	}

	logger.Info(context.Background(), "Git Commander stopped gracefully")
}
