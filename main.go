package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-messenger/config"
	"marketplace-messenger/database"
	"marketplace-messenger/event"
	"marketplace-messenger/event/listener"
	"marketplace-messenger/messenger"
	"marketplace-messenger/router"
	"marketplace-messenger/socketio"
	"marketplace-messenger/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	var logger zerolog.Logger
	if config.Config("ENVIRONMENT") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}
	zlog.Logger = logger

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "marketplace-messenger",
	})

	rest.Use(cors.New())

	database.RedisConnect()
	database.PostgresConnect()
	store.Init(database.Postgres)

	event.RabbitMQConnect([]string{
		event.QueueMarketplace,
		event.QueueOrders,
	})

	hub := messenger.NewHub(store.Conversations, logger)

	// Forward order status changes from the order service to online parties
	event.Subscribe(event.QueueOrders, listener.Orders(hub, logger))

	socket := socketio.Init(rest)

	router.Rest(rest)
	router.Socket(socket, hub, logger)

	go func() {
		if err := rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT"))); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logger.Info().Str("port", config.Config("SERVER_PORT")).Msg("marketplace-messenger listening")

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	socket.Close(nil)
	event.RabbitMQChannel.Close()
	event.RabbitMQConnection.Close()
	os.Exit(0)
}
