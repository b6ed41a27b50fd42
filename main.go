package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/calebdws/inkwell/api"
	"github.com/calebdws/inkwell/config"
	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	db, err := openDatabase(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Error connecting to database")
	}

	currentDB := database.New(db)
	if err := currentDB.Migrate(); err != nil {
		zlog.Fatal().Err(err).Msg("Error migrating database schema")
	}

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "serve":
		serve(cfg, currentDB)
	case "init":
		if err := runInit(currentDB); err != nil {
			zlog.Fatal().Err(err).Msg("init failed")
		}
	case "forge":
		if err := runForge(currentDB, os.Args[2:]); err != nil {
			zlog.Fatal().Err(err).Msg("forge failed")
		}
	default:
		fmt.Printf("Unknown command %q. Commands: serve (default), init, forge\n", command)
		os.Exit(1)
	}
}

func serve(cfg *config.Config, currentDB database.Database) {
	var sender services.EmailSender
	if cfg.ResendAPIKey != "" && cfg.ResendFromEmail != "" {
		sender = services.NewResendSender(cfg.ResendAPIKey, cfg.ResendFromEmail)
	} else {
		sender = services.NewLogSender()
	}
	mailer := services.NewMailer(sender, cfg.BaseURL, cfg.MailQueueSize, cfg.MailWorkers)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, currentDB, mailer)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	zlog.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	mailer.Close()
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  cfg.IsDevelopment(),
		},
	)

	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true,
		}), &gorm.Config{Logger: gormLogger})
	case "sqlite":
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		return gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{Logger: gormLogger})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
