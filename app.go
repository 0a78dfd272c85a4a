package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"

	"fitness-ai-assistant/chatlog"
	"fitness-ai-assistant/config"
	"fitness-ai-assistant/database"
	"fitness-ai-assistant/logging"
	"fitness-ai-assistant/metrics"
	"fitness-ai-assistant/profile"
	"fitness-ai-assistant/services"
	"fitness-ai-assistant/tables"
)

// app holds the wired collaborators shared by every command
type app struct {
	cfg      *config.Config
	chat     *services.ChatService
	profiles profile.Store
	logs     chatlog.Reader
	metrics  *metrics.Metrics
	closers  []func() error
}

// newApp wires tables, generator, profile store and conversation log from cfg
func newApp(ctx context.Context, cfg *config.Config, resetProfile bool) (*app, error) {
	log := logging.L()
	a := &app{cfg: cfg, metrics: metrics.NewMetrics()}

	t, err := tables.Load(cfg.TablesFile)
	if err != nil {
		return nil, err
	}

	generator, err := services.NewGenerator(ctx, cfg)
	if err != nil {
		log.Warnf("Fallback assistant disabled: %v", err)
		generator = services.Unavailable(cfg.AIProvider, err)
	}

	profiles, err := a.openProfileStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if resetProfile {
		if err := profiles.Reset(ctx); err != nil {
			log.Warnf("Failed to reset profile on start: %v", err)
		}
	}
	a.profiles = profiles

	recorder, err := a.openRecorder(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.chat = services.NewChatService(t, generator,
		services.WithRecorder(recorder),
		services.WithProfileStore(profiles),
		services.WithMetrics(a.metrics),
		services.WithTimeout(cfg.LLMTimeout),
	)

	log.Infow("Assistant ready",
		"provider", generator.Name(),
		"profile_backend", cfg.ProfileBackend,
		"chat_log", cfg.ChatLogPath,
	)
	return a, nil
}

func (a *app) openProfileStore(ctx context.Context) (profile.Store, error) {
	if a.cfg.ProfileBackend != "sqlite" {
		return profile.NewJSONStore(a.cfg.ProfilePath)
	}

	db, err := database.OpenSQLite(a.cfg.ProfilePath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)
	a.metrics.Registry().MustRegister(collectors.NewDBStatsCollector(db, "profile"))
	return profile.NewSQLiteStore(ctx, db)
}

func (a *app) openRecorder(ctx context.Context) (chatlog.Recorder, error) {
	var recorders chatlog.Multi

	if a.cfg.ChatLogPath != "" {
		csvRecorder, err := chatlog.NewCSVRecorder(a.cfg.ChatLogPath)
		if err != nil {
			return nil, err
		}
		recorders = append(recorders, csvRecorder)
		a.logs = csvRecorder
	}

	if a.cfg.ChatLogDSN != "" {
		db, err := database.ConnectPostgres(ctx, a.cfg.ChatLogDSN, 5, 2*time.Second)
		if err != nil {
			return nil, fmt.Errorf("conversation log database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.metrics.Registry().MustRegister(collectors.NewDBStatsCollector(db, "chatlog"))

		sqlRecorder, err := chatlog.NewSQLRecorder(ctx, db, database.Postgres)
		if err != nil {
			return nil, err
		}
		recorders = append(recorders, sqlRecorder)
		a.logs = sqlRecorder
	}

	return recorders, nil
}

// Close releases database handles
func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logging.L().Warnf("Close failed: %v", err)
		}
	}
	a.closers = nil
}
