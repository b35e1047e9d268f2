package notifier

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// SMTPSender отправляет письма через SMTP
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender создает отправителя писем
// Если username пустой, используется SMTP без аутентификации (Mailpit и аналоги)
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	host = strings.TrimSpace(host)

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: strings.TrimSpace(from),
		auth: auth,
	}
}

// Send отправляет письмо; net/smtp не принимает контекст, поэтому отправка
// идет в отдельной горутине, а ожидание ограничено контекстом
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrNoRecipient
	}

	msg := buildMessage(s.from, to, subject, body)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: smtp: %v", ErrDelivery, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: smtp: %v", ErrDelivery, ctx.Err())
	}
}

// buildMessage собирает письмо; значения заголовков не могут содержать переводы строк,
// тема кодируется по RFC 2047
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		headerValue(from),
		headerValue(to),
		mime.QEncoding.Encode("utf-8", headerValue(subject)),
		body,
	)
}

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func headerValue(v string) string {
	return strings.TrimSpace(headerBreaks.Replace(v))
}
