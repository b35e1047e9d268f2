package notifier

import "context"

// NoopEmailSender используется, когда SMTP не настроен
type NoopEmailSender struct{}

func (NoopEmailSender) Send(context.Context, string, string, string) error { return nil }

// NoopSMSSender используется, когда SMS-вебхук не настроен
type NoopSMSSender struct{}

func (NoopSMSSender) Send(context.Context, string, string) error { return nil }

// NoopAlertPublisher используется, когда kafka выключена
type NoopAlertPublisher struct{}

func (NoopAlertPublisher) Publish(context.Context, AdminAlert) error { return nil }
