package socketio

import (
	"context"
	"time"

	"marketplace-messenger/auth"
	"marketplace-messenger/config"
	"marketplace-messenger/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/socket.io-go-redis/adapter"
	r_type "github.com/zishang520/socket.io-go-redis/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// Init mounts the socket.io endpoint on the fiber app. The handshake
// middleware is the single authentication point of the socket edge: a
// connection without a valid credential is rejected before any event
// handler can see it.
func Init(app *fiber.App) *socket.Server {
	if config.Config("ENVIRONMENT") == "development" {
		log.DEBUG = true
	}

	options := socket.DefaultServerOptions()
	options.SetServeClient(true)
	options.SetAllowEIO3(true)
	options.SetPingInterval(300 * time.Millisecond)
	options.SetPingTimeout(200 * time.Millisecond)
	options.SetMaxHttpBufferSize(100000000)
	options.SetConnectTimeout(1000 * time.Millisecond)
	options.SetAdapter(&adapter.RedisAdapterBuilder{
		Redis: r_type.NewRedisClient(context.Background(), database.Redis[1]),
		Opts:  &adapter.RedisAdapterOptions{},
	})

	server := socket.NewServer(nil, nil)

	server.Use(func(client *socket.Socket, next func(*socket.ExtendedError)) {
		token, _ := client.Conn().Request().Query().Get("token")

		identity, err := auth.Verify(token, "JWT_ACCESS_KEY")
		if err != nil {
			next(socket.NewExtendedError("Authentication error", nil))
			return
		}

		client.Join(socket.Room(identity.UserID))
		client.SetData(identity)
		next(nil)
	})

	app.Get("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))
	app.Post("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))

	return server
}
