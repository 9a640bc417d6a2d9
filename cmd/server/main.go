package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/fra-anto/wedding-rsvp-api/internal/config"
	"github.com/fra-anto/wedding-rsvp-api/internal/database"
	"github.com/fra-anto/wedding-rsvp-api/internal/export"
	"github.com/fra-anto/wedding-rsvp-api/internal/handlers"
	"github.com/fra-anto/wedding-rsvp-api/internal/notifier"
	"github.com/fra-anto/wedding-rsvp-api/internal/tokencache"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Confirmation-code cache: Redis when configured, in-process otherwise
	var cache tokencache.Cache
	if cfg.RedisAddr != "" {
		cache = tokencache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, tokencache.DefaultTTL)
	} else {
		cache = tokencache.NewMemoryCache(tokencache.DefaultTTL)
	}

	// Notification channels
	emailSender := notifier.NewEmailSender(cfg, logger)
	responseNotifiers := []notifier.ResponseNotifier{emailSender}
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			logger.Warn().Err(err).Msg("Discord notifier not initialized")
		} else {
			responseNotifiers = append(responseNotifiers,
				notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID, logger))
		}
	}

	exporter := export.NewExporter(cfg.CoupleNames, cfg.BaseURL, logger)

	// Initialize Handlers
	adminAuthHandler := handlers.NewAdminAuthHandler(cfg, logger)
	guestHandler := handlers.NewGuestHandler(db, cfg)
	lookupHandler := handlers.NewLookupHandler(db, cache, logger)
	responseHandler := handlers.NewResponseHandler(db, cfg, responseNotifiers, logger)
	notificationHandler := handlers.NewNotificationHandler(db, cfg, emailSender)
	exportHandler := handlers.NewExportHandler(db, cfg, exporter)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, adminAuthHandler, guestHandler, lookupHandler,
		responseHandler, notificationHandler, exportHandler)

	// Start Server
	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
