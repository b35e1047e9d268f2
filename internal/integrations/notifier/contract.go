package notifier

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EmailSender отправка писем
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender отправка SMS
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// AlertPublisher публикация уведомления администратору о новой встрече
type AlertPublisher interface {
	Publish(ctx context.Context, alert AdminAlert) error
}

// MessageWriter подмножество *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}
