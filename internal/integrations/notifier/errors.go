package notifier

import "errors"

var (
	// ErrNotConfigured возвращается, когда канал уведомлений не настроен
	ErrNotConfigured = errors.New("notifier: channel not configured")

	// ErrNoRecipient возвращается, когда получатель не указан
	ErrNoRecipient = errors.New("notifier: no recipient")

	// ErrDelivery возвращается при ошибке доставки уведомления
	ErrDelivery = errors.New("notifier: delivery failed")
)
