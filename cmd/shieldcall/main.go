// Shieldcall - AI decoy conversations against voice phishing.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fiveshield/shieldcall/internal/alert"
	"github.com/fiveshield/shieldcall/internal/api"
	"github.com/fiveshield/shieldcall/internal/bus"
	"github.com/fiveshield/shieldcall/internal/domain"
	"github.com/fiveshield/shieldcall/internal/generator"
	"github.com/fiveshield/shieldcall/internal/report"
	"github.com/fiveshield/shieldcall/internal/responder"
	"github.com/fiveshield/shieldcall/internal/scorer"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// Load configuration
	cfg := domain.DefaultConfig()
	configPath := os.Getenv("SHIELDCALL_CONFIG")
	if configPath != "" {
		loaded, err := domain.LoadConfig(configPath)
		if err != nil {
			slog.Error("failed to load config", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Initialize structured logger
	slog.SetDefault(slog.New(newLogHandler(cfg.Logging)))

	// Log startup
	slog.Info("starting shieldcall",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)
	if configPath != "" {
		slog.Info("configuration file loaded", "path", configPath)
	}

	// API key comes from the environment, never from the config file
	if key := os.Getenv("SHIELDCALL_OPENAI_API_KEY"); key != "" {
		cfg.Generator.APIKey = key
	}

	slog.Info("configuration loaded",
		"generator_enabled", cfg.Generator.Enabled,
		"eventbus", cfg.EventBus.Type,
		"alert_rules", len(cfg.Alerts.Rules),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Initialize EventBus
	busImpl, err := bus.New(cfg.EventBus)
	if err != nil {
		slog.Error("failed to initialize event bus", "error", err)
		os.Exit(1)
	}
	defer busImpl.Close()
	slog.Info("event bus initialized", "type", cfg.EventBus.Type)

	// Initialize scoring pipeline
	sc := scorer.New()

	// Initialize the text-generation collaborator. Disabled or
	// credential-less configurations run on the scripted fallback.
	var gen domain.Generator
	if cfg.Generator.Enabled {
		if cfg.Generator.APIKey == "" {
			slog.Warn("generator enabled but no API key set, using scripted fallback")
		} else {
			gen = generator.NewOpenAI(cfg.Generator)
			slog.Info("generator initialized", "model", cfg.Generator.Model)
		}
	}

	rsp := responder.New(sc, gen, cfg.Generator)
	reports := report.NewGenerator(sc)

	// Initialize alert engine
	alerts, err := alert.NewEngine(cfg.Alerts.Rules)
	if err != nil {
		slog.Error("failed to initialize alert engine", "error", err)
		os.Exit(1)
	}
	slog.Info("alert engine initialized", "rules_count", alerts.RuleCount())

	// Initialize Server
	srv := api.NewServer(cfg.Server, rsp, reports, alerts, busImpl, Version)

	// Start Server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("shieldcall is ready",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	printBanner(cfg, Version)

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("shieldcall shutdown complete")
}

// newLogHandler builds the slog handler from the logging config. The
// SHIELDCALL_DEBUG environment variable overrides the configured level.
func newLogHandler(cfg domain.LoggingConfig) slog.Handler {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if os.Getenv("SHIELDCALL_DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.NewJSONHandler(os.Stdout, opts)
}

func printBanner(cfg *domain.Config, version string) {
	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════╗")
	fmt.Println("  ║              🛡  SHIELDCALL               ║")
	fmt.Println("  ║     AI Decoy Conversation Service         ║")
	fmt.Println("  ║      Let the AI take the call.            ║")
	fmt.Println("  ╚═══════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Version:  %s\n", version)
	fmt.Printf("  Server:   http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()
	fmt.Println("  Endpoints:")
	fmt.Println("    POST /call/start              - Start a decoy call")
	fmt.Println("    POST /call/process-audio      - Process a conversation turn")
	fmt.Println("    POST /call/end                - End a call and get the report")
	fmt.Println("    GET  /call/report/{call_id}   - Report retrieval stub")
	fmt.Println("    GET  /health                  - Health check")
	fmt.Println()
}
