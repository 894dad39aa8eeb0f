package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"universo/internal/api"
	"universo/internal/auth"
	"universo/internal/config"
	"universo/internal/logging"
	"universo/internal/notify"
	"universo/internal/realtime"
	"universo/internal/repository"
	"universo/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second
	reportTimeout   = 30 * time.Second
)

func serve(ctx context.Context, v *viper.Viper) error {
	config.LoadDotEnv()
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logging.Gorm(logger))
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer sqlDB.Close()
	logger.Info("database ready", "driver", cfg.Database.Driver)

	sectorRepo := repository.NewSectorRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	if err := service.NewSeedService(sectorRepo, userRepo, logger).Run(ctx, cfg.Seed); err != nil {
		return err
	}

	reportSvc := service.NewReportService(taskRepo, sectorRepo, meetingRepo)
	svc := api.Services{
		Auth:      service.NewAuthService(userRepo, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)),
		Tasks:     service.NewTaskService(taskRepo, sectorRepo, userRepo),
		Comments:  service.NewCommentService(commentRepo, taskRepo, userRepo),
		Sectors:   service.NewSectorService(sectorRepo, userRepo),
		Users:     service.NewUserService(userRepo, sectorRepo, taskRepo),
		Meetings:  service.NewMeetingService(meetingRepo, userRepo),
		Resources: service.NewResourceService(resourceRepo, sectorRepo),
		Reports:   reportSvc,
	}

	hub := realtime.NewHub(logger, cfg.AllowedOrigins)
	go hub.Run(ctx)

	scheduler := service.NewSchedulerService(time.Local, logger)
	scheduled, err := scheduler.ScheduleReport(cfg.Report, reportJob(reportSvc, notifiers(cfg.Telegram, logger), logger))
	if err != nil {
		return fmt.Errorf("schedule reports: %w", err)
	}
	if scheduled {
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info("report digest scheduled", "daily_at", cfg.Report.DailyAt, "interval", cfg.Report.Interval)
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(svc, api.Options{
			Logger:         logger,
			AllowedOrigins: cfg.AllowedOrigins,
			Hub:            hub,
			Ping:           sqlDB.PingContext,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// notifiers always logs digests and also posts them to Telegram when it is
// configured and reachable.
func notifiers(cfg config.Telegram, logger *log.Logger) notify.Notifier {
	all := notify.Multi{notify.NewLog(logger)}
	if !cfg.Enabled() {
		return all
	}
	tg, err := notify.NewTelegram(cfg.Token, cfg.ChatID)
	if err != nil {
		logger.Error("telegram disabled", "err", err)
		return all
	}
	logger.Info("telegram authorized", "account", tg.Account())
	return append(all, tg)
}

func reportJob(reports *service.ReportService, out notify.Notifier, logger *log.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		sum, err := reports.Summary(ctx, time.Now())
		if err != nil {
			logger.Error("build report", "err", err)
			return
		}
		if err := out.Notify(ctx, reports.Render(sum)); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("send report", "err", err)
		}
	}
}
