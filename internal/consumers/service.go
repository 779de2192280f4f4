package consumers

import (
	"context"
	"fmt"
	"log/slog"

	"parkify/internal/config"
	"parkify/internal/messaging"
	"parkify/internal/search"

	"github.com/nats-io/stan.go"
)

const queueGroup = "parkify-consumers"

type ConsumerService struct {
	nats     *messaging.NATSClient
	handlers *Handlers
	subs     []stan.Subscription
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	// Connect to NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	var indexer Indexer
	if cfg.SearchEnabled {
		esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			natsClient.Close()
			return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
		}
		indexer = esClient
	} else {
		slog.Warn("Search is disabled, bookings will not be indexed")
	}

	return &ConsumerService{
		nats:     natsClient,
		handlers: NewHandlers(indexer, nil),
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	for subject, handle := range cs.handlers.Subjects() {
		sub, err := cs.nats.SubscribeQueue(subject, queueGroup, cs.handlers.Ack(subject, handle))
		if err != nil {
			return err
		}
		cs.subs = append(cs.subs, sub)
	}

	slog.Info("All consumers started successfully", "subscriptions", len(cs.subs))
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	// Close keeps durable subscriptions so that queued events survive a restart
	for _, sub := range cs.subs {
		if err := sub.Close(); err != nil {
			slog.Error("Error closing subscription", "error", err)
		}
	}

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
			return err
		}
	}

	return nil
}
