package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/sportbot/internal/common/config"
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/common/sealer"
	"github.com/KirkDiggler/sportbot/internal/handlers/discord"
	"github.com/KirkDiggler/sportbot/internal/portal"
	autocheckinRepo "github.com/KirkDiggler/sportbot/internal/repositories/autocheckin"
	credentialsRepo "github.com/KirkDiggler/sportbot/internal/repositories/credentials"
	notificationRepo "github.com/KirkDiggler/sportbot/internal/repositories/notification"
	semesterRepo "github.com/KirkDiggler/sportbot/internal/repositories/semester_index"
	"github.com/KirkDiggler/sportbot/internal/scheduler"
	"github.com/KirkDiggler/sportbot/internal/services/autocheckin"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/notification"
	"github.com/KirkDiggler/sportbot/internal/services/semester"
	"github.com/KirkDiggler/sportbot/internal/services/session"
	"github.com/KirkDiggler/sportbot/internal/services/training"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("info", "json").Error("Failed to load config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).
		WithFields(map[string]interface{}{"app": cfg.App.Name, "env": cfg.App.Environment})

	if err := run(cfg, log); err != nil {
		log.Error("Bot stopped with error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return err
	}

	// Initialize repositories
	credentials, err := credentialsRepo.NewRedis(&credentialsRepo.Config{
		RedisClient: redisClient,
		Sealer:      sealer.New(cfg.Security.CredentialsKey),
	})
	if err != nil {
		return err
	}

	notifications, err := notificationRepo.NewRedis(&notificationRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	autoCheckins, err := autocheckinRepo.NewRedis(&autocheckinRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	semesterIndex, err := semesterRepo.NewRedis(&semesterRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	portalClient, err := portal.New(&portal.Config{
		BaseURL:  cfg.Portal.BaseURL,
		Location: loc,
		Timeout:  config.GetDuration(cfg.Portal.RequestTimeout),
	})
	if err != nil {
		return err
	}

	registry, err := session.New(&session.Config{
		PortalClient:    portalClient,
		CredentialsRepo: credentials,
		ServiceAccount: session.ServiceAccount{
			UserID:   cfg.Service.UserID,
			Email:    cfg.Service.Email,
			Password: cfg.Service.Password,
		},
		Logger: log,
	})
	if err != nil {
		return err
	}

	from, to, _, err := cfg.SemesterBounds(loc)
	if err != nil {
		return err
	}

	resolver, err := semester.New(&semester.Config{
		PortalClient: portalClient,
		Registry:     registry,
		IndexRepo:    semesterIndex,
		Location:     loc,
		From:         from,
		To:           to,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{Location: loc})
	if err != nil {
		return err
	}

	// The notifier and the bot share one Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return err
	}

	notifier, err := discord.NewNotifier(&discord.NotifierConfig{Sender: dg})
	if err != nil {
		return err
	}

	notificationSvc, err := notification.New(&notification.Config{
		Registry:         registry,
		PortalClient:     portalClient,
		NotificationRepo: notifications,
		Notifier:         notifier,
		Messaging:        messagingSvc,
		Logger:           log,
	})
	if err != nil {
		return err
	}

	autoCheckinSvc, err := autocheckin.New(&autocheckin.Config{
		Registry:        registry,
		PortalClient:    portalClient,
		AutoCheckinRepo: autoCheckins,
		Resolver:        resolver,
		Notifier:        notifier,
		Messaging:       messagingSvc,
		Location:        loc,
		Lookahead:       time.Duration(cfg.Scheduler.LookaheadDays) * 24 * time.Hour,
		Logger:          log,
	})
	if err != nil {
		return err
	}

	trainingSvc, err := training.New(&training.Config{
		Registry:         registry,
		PortalClient:     portalClient,
		AutoCheckin:      autoCheckinSvc,
		NotificationRepo: notifications,
		CredentialsRepo:  credentials,
		Notifier:         notifier,
		Location:         loc,
		AdminUserID:      cfg.Service.UserID,
		Logger:           log,
	})
	if err != nil {
		return err
	}

	bot, err := discord.New(&discord.Config{
		ApplicationID:       cfg.Discord.ApplicationID,
		GuildID:             cfg.Discord.GuildID,
		Session:             dg,
		Registry:            registry,
		TrainingService:     trainingSvc,
		NotificationService: notificationSvc,
		AutoCheckinService:  autoCheckinSvc,
		MessagingService:    messagingSvc,
		PortalClient:        portalClient,
		Location:            loc,
		RequestTimeout:      config.GetDuration(cfg.Portal.RequestTimeout) * 2,
		Logger:              log,
	})
	if err != nil {
		return err
	}

	jobs, err := scheduler.New(&scheduler.Config{Logger: log})
	if err != nil {
		return err
	}
	for _, job := range []*scheduler.Job{
		{
			Name:     "notifications",
			Interval: config.GetDuration(cfg.Scheduler.NotificationInterval),
			Run: func(ctx context.Context) error {
				_, err := notificationSvc.Reconcile(ctx)
				return err
			},
		},
		{
			Name:     "autocheckin",
			Interval: config.GetDuration(cfg.Scheduler.AutoCheckinInterval),
			Run: func(ctx context.Context) error {
				_, err := autoCheckinSvc.Reconcile(ctx)
				return err
			},
		},
		{
			Name:       "semester_index",
			Interval:   config.GetDuration(cfg.Scheduler.SemesterRebuildInterval),
			RunOnStart: true,
			Run: func(ctx context.Context) error {
				_, err := resolver.Rebuild(ctx)
				return err
			},
		},
	} {
		if err := jobs.Add(job); err != nil {
			return err
		}
	}

	var metricsServer *http.Server
	if cfg.Metrics.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		return err
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	if err := jobs.Start(ctx); err != nil {
		return err
	}

	log.Info("Sport bot is running", map[string]interface{}{"timezone": loc.String()})

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info("Shutting down", nil)
	stop()
	jobs.Stop()

	if err := bot.Stop(); err != nil {
		log.Warn("Error stopping bot", map[string]interface{}{"error": err.Error()})
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error stopping metrics server", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}
