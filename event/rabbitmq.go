package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace-messenger/config"
	"marketplace-messenger/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const RabbitMQActionHeader string = "x-action"

// Queues the service talks to: it publishes conversation activity to
// "marketplace" and consumes order status changes from "orders".
const (
	QueueMarketplace = "marketplace"
	QueueOrders      = "orders"
)

// Actions published to the marketplace queue.
const (
	ActionConversationCreated = "conversation.created"
	ActionMessageCreated      = "message.created"
)

var (
	RabbitMQConnection *amqp.Connection
	RabbitMQChannel    *amqp.Channel
	RabbitMQQueue      = make(map[string]amqp.Queue)

	err error
)

func RabbitMQConnect(queues []string) {
	// Connect to RabbitMQ server
	RabbitMQConnection, err = amqp.Dial(fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		config.Config("RABBITMQ_USER"),
		config.Config("RABBITMQ_PASSWORD"),
		config.Config("RABBITMQ_HOST"),
		config.Config("RABBITMQ_PORT"),
	))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	log.Info().Msg("connection opened to RabbitMQ server")

	// Open a RabbitMQ channel
	RabbitMQChannel, err = RabbitMQConnection.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open a RabbitMQ channel")
	}

	// Declare a queues
	for _, name := range queues {
		queue, err := RabbitMQChannel.QueueDeclare(
			name,  // name
			false, // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			log.Fatal().Err(err).Str("queue", name).Msg("failed to declare a RabbitMQ queue")
		}

		RabbitMQQueue[name] = queue
		log.Info().Str("queue", name).Msg("declared RabbitMQ queue")
	}
}

// Subscribe consumes a queue and dispatches each delivery to handler on a
// dedicated goroutine. Handler panics or errors must not reach here;
// handlers own their failure handling.
func Subscribe(queue string, handler func(action string, data []byte)) {
	msgs, err := RabbitMQChannel.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatal().Err(err).Str("queue", queue).Msg("failed to register a consumer")
	}
	log.Info().Str("queue", queue).Msg("subscribed to RabbitMQ queue")

	go func() {
		for msg := range msgs {
			action, _ := msg.Headers[RabbitMQActionHeader].(string)
			msg.Ack(false)
			handler(action, msg.Body)
		}
	}()
}

// Emit publishes an action to a queue. Bus failures are reported, never
// fatal: a lost domain event must not fail the request that produced it.
func Emit(queue string, action string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := RabbitMQChannel.PublishWithContext(
		ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Headers: amqp.Table{
				RabbitMQActionHeader: action,
			},
			Body: data,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", action, queue, err)
	}

	metrics.BusEventsPublished.WithLabelValues(action).Inc()
	return nil
}

// Publish marshals v and emits it, logging instead of propagating failure.
func Publish(queue string, action string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("event payload marshal failed")
		return
	}
	if err := Emit(queue, action, data); err != nil {
		log.Error().Err(err).Str("action", action).Msg("event publish failed")
	}
}
