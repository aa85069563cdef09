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

	api "github.com/rpupo63/student-portfolio-backend/api"
	"github.com/rpupo63/student-portfolio-backend/config"
	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/rpupo63/student-portfolio-backend/services"
	"github.com/rpupo63/student-portfolio-backend/storage"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogging(c)
	log.Info().Msg("Initializing app...")

	if err := config.ResolveSecrets(context.Background(), c,
		"DB_PASSWORD", "JWT_SECRET", "ADMIN_PASSWORD", "RESEND_API_KEY", "TWILIO_AUTH_TOKEN",
	); err != nil {
		log.Fatal().Err(err).Msg("Error resolving secrets")
	}

	db, err := database.Open(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, "./generated"); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		if err := models.PrintColumnMismatchReport(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}

	currentDB := database.New(db)
	if err := currentDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	auth, err := services.NewAuthenticator(currentDB,
		config.GetString(c, "JWT_SECRET", ""),
		time.Duration(config.GetInt(c, "SESSION_TTL_HOURS", 24))*time.Hour,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing authentication")
	}

	if username, password := config.GetString(c, "ADMIN_USERNAME", ""), config.GetString(c, "ADMIN_PASSWORD", ""); username != "" && password != "" {
		if _, err := auth.EnsureAdmin(username, password); err != nil {
			log.Fatal().Err(err).Msg("Error creating bootstrap administrator")
		}
	}

	notifyAdmin, err := services.ResolveNotifyAdmin(currentDB, config.GetString(c, "NOTIFY_ADMIN_USERNAME", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("Error resolving notification administrator")
	}
	if notifyAdmin == nil {
		log.Warn().Msg("No administrator account exists; uploads will not notify anyone")
	}

	store, err := storage.New(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing storage")
	}

	opts := []services.Option{services.WithNotifyAdmin(notifyAdmin)}
	if emailer := services.NewResendEmailer(c); emailer != nil {
		opts = append(opts, services.WithEmailer(emailer, config.GetString(c, "ADMIN_NOTIFY_EMAIL", "")))
	}
	if sms := services.NewTwilioSMS(c); sms != nil {
		opts = append(opts, services.WithSMS(sms))
	}
	portfolio := services.NewPortfolio(currentDB, store, opts...)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(c, portfolio, auth, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogging configures the global zerolog logger from LOG_LEVEL and LOG_PRETTY
func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.GetBool(c, "LOG_PRETTY", false) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
