// Package queue_publisher publishes domain events to RabbitMQ. Errors are
// logged and returned so callers can ignore failures without interrupting
// the main request flow; a lost notification must never fail a signup.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/eventflow/eventflow-api/internal/queue"
)

// AMQP is the broker-backed publisher handed to handlers. The zero value
// is ready to use.
type AMQP struct{}

func (AMQP) PublishUserRegistered(ctx context.Context, event q.UserRegisteredEvent) error {
	return PublishUserRegistered(ctx, event)
}

func (AMQP) PublishRegistrationConfirmed(ctx context.Context, event q.RegistrationConfirmedEvent) error {
	return PublishRegistrationConfirmed(ctx, event)
}

// PublishUserRegistered publishes a UserRegisteredEvent to the
// user.registered queue.
func PublishUserRegistered(ctx context.Context, event q.UserRegisteredEvent) error {
	return publish(ctx, q.UserRegisteredQueue, event)
}

// PublishRegistrationConfirmed publishes a RegistrationConfirmedEvent to
// the registration.confirmed queue.
func PublishRegistrationConfirmed(ctx context.Context, event q.RegistrationConfirmedEvent) error {
	return publish(ctx, q.RegistrationConfirmedQueue, event)
}

// publish dials the broker, declares the queue (idempotent, durable) and
// publishes one persistent JSON message. The connection is per-call; the
// publish volume here is a handful of messages per signup, not a stream.
func publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
