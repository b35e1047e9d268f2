package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Notifier отправляет подтверждения клиенту и уведомления администратору
type Notifier struct {
	email   EmailSender
	sms     SMSSender
	alerts  AlertPublisher
	adminTo string
	log     Logger
}

// NewNotifier создает notifier; adminTo - адрес для копии уведомления администратору (может быть пустым)
func NewNotifier(email EmailSender, sms SMSSender, alerts AlertPublisher, adminTo string, log Logger) *Notifier {
	return &Notifier{
		email:   email,
		sms:     sms,
		alerts:  alerts,
		adminTo: strings.TrimSpace(adminTo),
		log:     log,
	}
}

// SendConfirmation отправляет клиенту письмо и, если разрешено, SMS
// Ошибки каналов объединяются: сбой одного канала не отменяет другой.
// Без адреса клиента письмо не отправляется
func (n *Notifier) SendConfirmation(ctx context.Context, details AppointmentDetails, link *string, smsEnabled bool) error {
	var errs []error

	if details.ClientEmail != "" {
		if err := n.email.Send(ctx, details.ClientEmail, confirmationSubject(details), confirmationBody(details, link)); err != nil {
			n.log.Warn("SendConfirmation: email failed: to=%s, error=%v", details.ClientEmail, err)
			errs = append(errs, err)
		}
	}

	if smsEnabled && details.ClientPhone != nil && strings.TrimSpace(*details.ClientPhone) != "" {
		if err := n.sms.Send(ctx, *details.ClientPhone, smsBody(details)); err != nil {
			n.log.Warn("SendConfirmation: sms failed: error=%v", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// SendAdminAlert публикует событие о новой встрече и дублирует его письмом администратору
func (n *Notifier) SendAdminAlert(ctx context.Context, details AppointmentDetails, link *string, ownerID int64) error {
	var errs []error

	alert := AdminAlert{
		OwnerID:        ownerID,
		Kind:           details.Kind,
		ClientName:     details.ClientName,
		ClientEmail:    details.ClientEmail,
		Date:           details.Date,
		Time:           details.TimeLabel,
		Start:          details.Start,
		End:            details.End,
		ConferenceLink: link,
		CreatedAt:      time.Now().UTC(),
	}

	if err := n.alerts.Publish(ctx, alert); err != nil {
		n.log.Warn("SendAdminAlert: publish failed: owner_id=%d, error=%v", ownerID, err)
		errs = append(errs, err)
	}

	if n.adminTo != "" {
		subject := fmt.Sprintf("New %s booked: %s", details.Kind, details.ClientName)
		if err := n.email.Send(ctx, n.adminTo, subject, adminBody(details, link)); err != nil {
			n.log.Warn("SendAdminAlert: email failed: owner_id=%d, error=%v", ownerID, err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// SendSlotTaken сообщает клиенту, что подтвержденное время заняли до сохранения записи
func (n *Notifier) SendSlotTaken(ctx context.Context, details AppointmentDetails) error {
	if details.ClientEmail == "" {
		return ErrNoRecipient
	}

	subject := fmt.Sprintf("Your %s on %s at %s could not be booked", details.Kind, details.Date, details.TimeLabel)
	if err := n.email.Send(ctx, details.ClientEmail, subject, slotTakenBody(details)); err != nil {
		n.log.Warn("SendSlotTaken: email failed: to=%s, error=%v", details.ClientEmail, err)
		return err
	}

	return nil
}

func greeting(d AppointmentDetails) string {
	if d.ClientName == "" {
		return "Hi,\n\n"
	}
	return fmt.Sprintf("Hi %s,\n\n", d.ClientName)
}

func confirmationSubject(d AppointmentDetails) string {
	state := "requested"
	if d.Confirmed {
		state = "confirmed"
	}
	return fmt.Sprintf("Your %s is %s: %s at %s", d.Kind, state, d.Date, d.TimeLabel)
}

func confirmationBody(d AppointmentDetails, link *string) string {
	var b strings.Builder

	b.WriteString(greeting(d))
	if d.Confirmed {
		fmt.Fprintf(&b, "Your %s is confirmed for %s at %s.\n", d.Kind, d.Date, d.TimeLabel)
	} else {
		fmt.Fprintf(&b, "We received your %s request for %s at %s. We will confirm it shortly.\n", d.Kind, d.Date, d.TimeLabel)
	}
	if link != nil && *link != "" {
		fmt.Fprintf(&b, "\nJoin online: %s\n", *link)
	}
	if d.Notes != nil && *d.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", *d.Notes)
	}

	return b.String()
}

func smsBody(d AppointmentDetails) string {
	state := "requested"
	if d.Confirmed {
		state = "confirmed"
	}
	return fmt.Sprintf("%s %s: %s at %s", d.Kind, state, d.Date, d.TimeLabel)
}

func adminBody(d AppointmentDetails, link *string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Client: %s <%s>\n", d.ClientName, d.ClientEmail)
	if d.ClientPhone != nil {
		fmt.Fprintf(&b, "Phone: %s\n", *d.ClientPhone)
	}
	fmt.Fprintf(&b, "When: %s at %s (%s - %s)\n", d.Date, d.TimeLabel,
		d.Start.Format(time.RFC3339), d.End.Format(time.RFC3339))
	if link != nil && *link != "" {
		fmt.Fprintf(&b, "Link: %s\n", *link)
	}

	return b.String()
}

func slotTakenBody(d AppointmentDetails) string {
	var b strings.Builder

	b.WriteString(greeting(d))
	fmt.Fprintf(&b, "The time we sent you for your %s (%s at %s) was booked by someone else a moment earlier.\n", d.Kind, d.Date, d.TimeLabel)
	b.WriteString("Your appointment was not saved. Please pick another time.\n")

	return b.String()
}
