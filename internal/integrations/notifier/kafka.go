package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const adminAlertEventType = "appointment.admin_alert"

// KafkaAlertPublisher публикует события о новых встречах в kafka
type KafkaAlertPublisher struct {
	writer MessageWriter
	topic  string
}

func NewKafkaAlertPublisher(writer MessageWriter, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{writer: writer, topic: topic}
}

// Publish отправляет событие; ключ сообщения - владелец календаря,
// поэтому события одного календаря попадают в одну партицию
func (p *KafkaAlertPublisher) Publish(ctx context.Context, alert AdminAlert) error {
	if alert.EventID == "" {
		alert.EventID = uuid.NewString()
	}

	value, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("%w: kafka: marshal: %v", ErrDelivery, err)
	}

	headers := []kafka.Header{
		{Key: "event_id", Value: []byte(alert.EventID)},
		{Key: "event_type", Value: []byte(adminAlertEventType)},
	}

	msg := kafka.Message{
		Topic:   p.topic,
		Key:     []byte(strconv.FormatInt(alert.OwnerID, 10)),
		Value:   value,
		Headers: injectTraceHeaders(ctx, headers),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka: %v", ErrDelivery, err)
	}
	return nil
}

// injectTraceHeaders добавляет W3C trace context в заголовки сообщения
func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)
