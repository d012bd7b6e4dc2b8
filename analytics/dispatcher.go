package analytics

import (
	"encoding/json"
	"strings"

	"github.com/Shopify/sarama"
	masker "github.com/ggwhite/go-masker"
	"github.com/google/uuid"
	"go.uber.org/zap"

	log "github.com/therealharsh/backflow-tester-sub001/pkg/logger"
)

// SearchEvent describes one resolved search for downstream analytics.
type SearchEvent struct {
	ID          string `json:"id"`
	Query       string `json:"query"`
	Kind        string `json:"kind"`
	Mode        string `json:"mode,omitempty"`
	Redirect    string `json:"redirect,omitempty"`
	ResultCount int    `json:"result_count"`
	Epoch       int64  `json:"epoch"`
}

func NewProducer(brokers []string) (sarama.AsyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Errors = true

	return sarama.NewAsyncProducer(brokers, config)
}

// Dispatcher publishes search events without ever blocking or failing
// the request that produced them. A nil Dispatcher is a valid no-op.
type Dispatcher struct {
	producer sarama.AsyncProducer
	topic    string
}

func NewDispatcher(producer sarama.AsyncProducer, topic string) *Dispatcher {
	d := &Dispatcher{
		producer: producer,
		topic:    topic,
	}

	go func() {
		for err := range producer.Errors() {
			log.Logger().Warn("analytics publish failed", zap.Error(err))
		}
	}()

	return d
}

// Dispatch enqueues an event. Freeform queries can contain a user's
// street address, so they are masked before leaving the process. A full
// producer queue drops the event rather than waiting.
func (d *Dispatcher) Dispatch(event SearchEvent) {
	if d == nil || d.producer == nil {
		return
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if strings.EqualFold(event.Kind, "freeform") {
		event.Query = masker.Address(event.Query)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(event.ID),
		Value: sarama.ByteEncoder(payload),
	}

	select {
	case d.producer.Input() <- msg:
	default:
	}
}

func (d *Dispatcher) Close() error {
	if d == nil || d.producer == nil {
		return nil
	}
	return d.producer.Close()
}
