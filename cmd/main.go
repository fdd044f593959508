package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"parley/auth"
	"parley/internal"
	"parley/moderation"
	"parley/observability"
	"parley/repositories"
	"parley/services"
	"parley/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like index cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}

	// 2. Moderation & Search index
	moderator, err := moderation.NewModerator(internal.SplitWords(config.CensoredWords), charReplacement, log)
	if err != nil {
		return fmt.Errorf("moderator setup failed: %w", err)
	}

	// The index is memory-only, state does not survive a restart.
	blugeWriter, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		log.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Stores & Services
	userRepository := repositories.NewUserRepository()
	roomRepository := repositories.NewRoomRepository()
	signer := auth.NewTokenSigner(config.SessionSecret, config.AuthTokenDuration)
	monitor := observability.NewMonitor(log)

	searchService := services.NewSearchService(blugeWriter, log)
	authService := services.NewAuthService(userRepository, signer)
	chatService := services.NewChatService(roomRepository, moderator, searchService, monitor, log)

	server := web.NewServer(log, authService, chatService, searchService, signer, monitor, config.MaxContentLength)

	// 4. Optional live inspector on its own port
	if config.EnableInspector {
		url := fmt.Sprintf("http://localhost:%d/inspect", config.InspectorPort)
		log.Info("Live inspector available", "url", url)
		internal.StartDebugServer(roomRepository, config.InspectorPort, "/inspect", func() map[string]any {
			snapshot := monitor.Snapshot()
			return map[string]any{
				"rooms":    snapshot.RoomsCreated,
				"messages": snapshot.MessagesPosted,
				"fetches":  snapshot.FetchCalls,
				"censored": snapshot.CensorHits,
				"rss_mb":   snapshot.RssMb,
				"uptime":   snapshot.Uptime,
			}
		})
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:    address,
		Handler: server.Routes(),
	}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}
