//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange",
		RoutingKey: "test-routing-key",
		QueueName:  "test-queue",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.NoError(err)
	s.NotNil(pub)

	err = pub.Close()
	s.NoError(err)
}

func (s *RabbitMQIntegrationSuite) newConfig(name string) Config {
	return Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-" + name,
		RoutingKey: "test-routing-key-" + name,
		QueueName:  "test-queue-" + name,
	}
}

func testEvent(outcome domain.FetchOutcome) *domain.FetchEvent {
	event := &domain.FetchEvent{
		ID:         1,
		Date:       "2024-01-15",
		Language:   domain.English,
		URL:        "https://madhubanmurli.org/murlis/en/html/murli-2024-01-15.html",
		Outcome:    outcome,
		StatusCode: 200,
		Bytes:      2048,
		Duration:   120 * time.Millisecond,
		OccurredAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if outcome == domain.OutcomeFailure {
		msg := "unexpected status 404"
		event.StatusCode = 404
		event.Error = &msg
	}
	return event
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishFetched() {
	cfg := s.newConfig("fetched")

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.Publish(s.ctx, testEvent(domain.OutcomeSuccess))
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("application/json", msg.ContentType)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)

	var received FetchEventMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal("fetched", received.Action)
	s.Equal("2024-01-15", received.Event.Date)
	s.Equal(domain.English, received.Event.Language)
	s.Equal(2048, received.Event.Bytes)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishFailed() {
	cfg := s.newConfig("failed")

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.Publish(s.ctx, testEvent(domain.OutcomeFailure))
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received FetchEventMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal("failed", received.Action)
	s.Equal(404, received.Event.StatusCode)
	s.Require().NotNil(received.Event.Error)
	s.Equal("unexpected status 404", *received.Event.Error)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_SkipsCancelled() {
	cfg := s.newConfig("cancelled")

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	s.NoError(pub.Publish(s.ctx, testEvent(domain.OutcomeCancelled)))
	s.NoError(pub.Publish(s.ctx, testEvent(domain.OutcomeSuccess)))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received FetchEventMessage
	s.NoError(json.Unmarshal(msg.Body, &received))
	s.Equal("fetched", received.Action)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
