package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/ideku-backend/api"
	"github.com/rpupo63/ideku-backend/config"
	"github.com/rpupo63/ideku-backend/database"
	"github.com/rpupo63/ideku-backend/models"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}

// run wires the application and blocks until the server stops. Every error
// path returns so that deferred cleanup, such as closing the database, runs.
func run() error {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	c := config.New()
	setupLogger(c)

	if envErr != nil {
		log.Warn().Err(envErr).Msg("No .env file loaded")
	}
	log.Info().Msg("Initializing app...")

	if path := config.GetString(c, "SSM_PARAMETER_PATH", ""); path != "" {
		overrides, err := loadParameters(c, path)
		if err != nil {
			return fmt.Errorf("load SSM parameters from %s: %w", path, err)
		}
		c = config.Merge(c, overrides)
		log.Info().Int("parameters", len(overrides)).Str("path", path).Msg("Loaded SSM parameters")
	}

	log.Info().Str("dbType", config.GetString(c, "DB_TYPE", database.TypePostgres)).Msg("Connecting to database...")
	db, err := database.Open(c, log.Logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		} else {
			log.Info().Msg("Database connection closed")
		}
	}()

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		return models.GenerateModels(db, "./generated")
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		return models.WriteColumnMismatchReport(db, os.Stdout)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	server, err := api.NewServer(database.New(db), c)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	// Buffered so Start can still report ListenAndServe's result after shutdown.
	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// setupLogger configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.GetString(c, "LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func loadParameters(c map[string]string, path string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := config.NewSSMClient(ctx, config.GetString(c, "AWS_REGION", ""))
	if err != nil {
		return nil, err
	}
	return config.LoadSSM(ctx, client, path)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-sig)
}
