package consumer

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"coach-crm/models"
	"coach-crm/utils"
)

const clientsIndex = "clients"

type ClientEvent struct {
	Event string         `json:"event"`
	ID    string         `json:"id"`
	Data  *models.Client `json:"data"`
}

// ClientConsumer keeps the Elasticsearch search replica in step with
// client events. The repository remains the source of truth; indexing
// is best-effort and never blocks the write path.
type ClientConsumer struct {
	es       utils.ElasticsearchClient
	reader   *kafka.Reader
	shutdown chan struct{}
}

func NewClientConsumer(es utils.ElasticsearchClient) *ClientConsumer {
	return &ClientConsumer{
		es: es,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{os.Getenv("KAFKA_BROKER")},
			Topic:   "client_events",
			GroupID: "coach-crm-indexer",
			MaxWait: 10 * time.Second,
		}),
		shutdown: make(chan struct{}),
	}
}

func (c *ClientConsumer) Start(ctx context.Context) {
	log.Println("Starting Kafka consumer...")

	go func() {
		for {
			select {
			case <-c.shutdown:
				return
			default:
				c.processMessages(ctx)
			}
		}
	}()
}

func (c *ClientConsumer) Stop() {
	close(c.shutdown)
	if err := c.reader.Close(); err != nil {
		log.Printf("Error closing Kafka reader: %v", err)
	}
}

func (c *ClientConsumer) processMessages(ctx context.Context) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if err == context.Canceled {
			return
		}
		log.Printf("Kafka read error: %v (will retry)", err)
		time.Sleep(5 * time.Second)
		return
	}

	var event ClientEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("Failed to unmarshal Kafka message: %v", err)
		return
	}

	switch event.Event {
	case "client_created", "client_updated", "history_added":
		c.indexClient(ctx, event.Data)
	case "client_deleted":
		c.removeClient(ctx, event.ID)
	default:
		log.Printf("Unknown event type: %s", event.Event)
	}
}

func (c *ClientConsumer) indexClient(ctx context.Context, client *models.Client) {
	if c.es == nil || client == nil {
		return
	}

	if err := c.es.IndexClient(ctx, clientsIndex, client.ID, client); err != nil {
		log.Printf("Failed to index client in Elasticsearch: %v", err)
		return
	}

	log.Printf("Indexed client %s", client.ID)
}

func (c *ClientConsumer) removeClient(ctx context.Context, id string) {
	if c.es == nil || id == "" {
		return
	}

	if err := c.es.DeleteClient(ctx, clientsIndex, id); err != nil {
		log.Printf("Failed to delete client from Elasticsearch: %v", err)
		return
	}

	log.Printf("Removed client %s from the index", id)
}
