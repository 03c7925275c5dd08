package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"skillswap/auth"
	"skillswap/blob"
	"skillswap/channel"
	"skillswap/docstore"
	"skillswap/internal"
	"skillswap/moderation"
	"skillswap/runtime/workers"
	"skillswap/search"
	"skillswap/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the daemon lifecycle, and
// centralizes error reporting, so that defers execute before exit and the
// entry point stays testable.
func run() error {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.LoggerFromString(config.LogLevel)

	censorChar, err := internal.CharacterRune(config.CensorReplacement)
	if err != nil {
		return err
	}

	// 2. Databases
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		log.Info("Closing index...")
		_ = blugeWriter.Close()
	}()

	// 3. Moderation
	words, err := moderation.LoadCensoredWords()
	if err != nil {
		return fmt.Errorf("censored words: %w", err)
	}
	moderator, err := moderation.NewModerator(words, censorChar)
	if err != nil {
		return fmt.Errorf("moderator: %w", err)
	}

	// 4. Store, channels, services
	store := docstore.New(db, log, config.WriteBufferSize)
	blobs, err := blob.NewStore(config.BlobRoot, config.BlobBaseURL, log)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}
	index := search.NewIndex(blugeWriter, log)
	session := auth.NewSession(db, log)

	conversation := channel.NewConversation(store, log)
	feed := channel.NewFeed(store, log)

	authService := services.NewAuthService(store, session, nil, config.TokenDuration, log)
	chatService := services.NewChatService(conversation, &moderator, session, log)
	feedService := services.NewFeedService(feed, &moderator, session, log)
	profileService := services.NewProfileService(store, blobs, index, log)
	directoryService := services.NewDirectoryService(store, index, log)
	sessionService := services.NewSessionService(store, session, log)

	// 5. Supervision
	telemetry := workers.NewTelemetryWorker(log, config.TelemetryInterval)
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(store, telemetry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	if config.SeedDemo {
		err := seedDemo(ctx, log, authService, profileService, feedService,
			chatService, sessionService, directoryService)
		if err != nil {
			log.Error("Demo seed failed", "error", err)
		}
		authService.SignOut()
	}

	// 6. Inspect server
	addr := fmt.Sprintf("%s:%d", config.InspectHost, config.InspectPort)
	internal.StartInspectServer(db, addr, "/inspect", internal.DefaultMapper, func() map[string]any {
		stats := telemetry.Latest()
		return map[string]any{
			"rss_mb":      stats.RSSBytes >> 20,
			"cpu_percent": fmt.Sprintf("%.1f", stats.CPUPercent),
			"status":      stats.Status,
		}
	})
	log.Info("Inspect server listening", "addr", addr)

	// 7. Run until signal
	<-supDone
	log.Info("Program stopped cleanly")
	return nil
}
