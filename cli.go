package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"fitness-ai-assistant/config"
	"fitness-ai-assistant/handlers"
	"fitness-ai-assistant/logging"
	"fitness-ai-assistant/models"
	"fitness-ai-assistant/services"
)

var cfg *config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fitness-ai",
		Short:         "Fitness chatbot backend with built-in calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			return logging.Init(cfg.LogLevel, cfg.LogDevelopment)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  runServe,
	}
	ask := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Answer one message locally and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
	checkLLM := &cobra.Command{
		Use:   "check-llm",
		Short: "Send a test prompt to the configured fallback provider",
		RunE:  runCheckLLM,
	}

	root.AddCommand(serve, ask, checkLLM)
	root.RunE = runServe
	return root
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.L()
	log.Infof("Starting %s", handlers.ServiceName)
	log.Infof("AI Provider: %s", cfg.AIProvider)

	a, err := newApp(cmd.Context(), cfg, cfg.ResetProfileOnStart)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.GinMode != gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.New(a.chat, a.profiles, a.logs, a.metrics), handlers.RouterConfig{
		FrontendDir:    cfg.FrontendDir,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited")
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	reply, _ := a.chat.Respond(cmd.Context(), strings.Join(args, " "), nil)
	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}

func runCheckLLM(cmd *cobra.Command, args []string) error {
	generator, err := services.NewGenerator(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLMTimeout)
	defer cancel()

	reply, err := generator.Generate(ctx, services.Prompt{
		System: "You are a connectivity check. Reply with one short sentence.",
		History: []models.ChatMessage{
			{Role: models.RoleUser, Content: "Say hello to confirm you are reachable."},
		},
	})
	if err != nil {
		return fmt.Errorf("%s is not reachable: %w", generator.Name(), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s OK: %s\n", generator.Name(), reply)
	return nil
}
