package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	httpadp "github.com/SagarNunugonda/lendwise/internal/adapter/http"
	mw "github.com/SagarNunugonda/lendwise/internal/adapter/middleware"
	"github.com/SagarNunugonda/lendwise/internal/adapter/repository/jsonfile"
	"github.com/SagarNunugonda/lendwise/internal/config"
	"github.com/SagarNunugonda/lendwise/internal/infrastructure/cache"
	"github.com/SagarNunugonda/lendwise/internal/infrastructure/metrics"
	"github.com/SagarNunugonda/lendwise/internal/infrastructure/notify"
	uc "github.com/SagarNunugonda/lendwise/internal/usecase/loan"
	"github.com/SagarNunugonda/lendwise/internal/usecase/reminder"
)

// countingNotifier bumps the reminder counter around the real channel.
type countingNotifier struct {
	inner notify.Notifier
	m     *metrics.Metrics
}

func (n *countingNotifier) Send(ctx context.Context, r notify.Reminder) (notify.Delivery, error) {
	d, err := n.inner.Send(ctx, r)
	if err == nil {
		n.m.RemindersTotal.Inc()
	}
	return d, err
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	repo, err := jsonfile.NewLoanRepository(cfg.DataFile)
	if err != nil {
		logger.WithError(err).Fatal("open data file")
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var notifier notify.Notifier
	if cfg.SMTPEnabled() {
		notifier = notify.NewSMTPNotifier(cfg, logger)
	} else {
		notifier = notify.NewLogNotifier(logger)
	}
	notifier = &countingNotifier{inner: notifier, m: m}

	loanUC := uc.NewUsecase(repo, notifier, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover(), echomw.CORS())
	e.Use(mw.Requests(m))

	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Fatal("connect redis")
		}
		e.Use(mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	}

	// routes
	h := httpadp.NewHandler()
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	httpadp.NewLoanHandler(loanUC).Register(e.Group("/api"))

	// daily due-soon sweep
	c := cron.New()
	sweeper := reminder.NewSweeper(repo, notifier, logger)
	if _, err := reminder.Schedule(c, cfg.ReminderCron, sweeper); err != nil {
		logger.WithError(err).Fatal("schedule reminder sweep")
	}
	c.Start()
	defer c.Stop()

	addr := ":" + cfg.AppPort
	logger.Infof("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		logger.Fatal(err)
	}
}
