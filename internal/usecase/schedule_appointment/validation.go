package schedule_appointment

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Время встречи не проверяется: нераспознанная метка дает 14:00.
// Пустое имя и некорректный адрес не критичны, их обрабатывает normalizeContact
func validateRequest(req *Request) error {
	if req.OwnerID < 0 {
		return fmt.Errorf("%w: ownerID must not be negative", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: client name is too long", ErrInvalidInput)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: client name must not contain control characters", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidAppointmentTime)
	}

	if !req.Kind.IsValid() {
		return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, req.Kind)
	}

	if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	if req.Status != nil && !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	for _, lead := range []*int{req.Reminders.AgentLeadMinutes, req.Reminders.ClientLeadMinutes} {
		if lead != nil && *lead < 0 {
			return fmt.Errorf("%w: reminder lead time must not be negative", ErrInvalidInput)
		}
	}

	return nil
}

// normalizeContact приводит контакты клиента к виду, в котором они сохраняются и используются для отправки:
// имя без пробелов по краям, адрес без отображаемого имени ("Bob <bob@example.com>" -> "bob@example.com").
// Пустой или некорректный адрес сбрасывается, письмо клиенту в этом случае не отправляется
func normalizeContact(req *Request) error {
	req.ClientName = strings.TrimSpace(req.ClientName)

	raw := strings.TrimSpace(req.ClientEmail)
	req.ClientEmail = ""
	if raw == "" {
		return errors.New("client email is empty, confirmation email skipped")
	}

	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return fmt.Errorf("invalid client email, confirmation email skipped: %v", err)
	}
	req.ClientEmail = addr.Address

	return nil
}

// effectiveDuration длительность встречи: из запроса, иначе из настроек (не меньше минимальной)
func effectiveDuration(requested int, settings domain.CalendarSettings) int {
	if requested > 0 {
		return requested
	}
	return max(settings.DefaultDurationMinutes, domain.MinAppointmentMinutes)
}
