package resolve_slot

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID < 0 {
		return fmt.Errorf("%w: ownerID must not be negative", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidAppointmentTime)
	}

	if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	if req.Count < 0 || req.Count > MaxAlternatives {
		return fmt.Errorf("%w: count must be between 0 and %d", ErrInvalidInput, MaxAlternatives)
	}

	return nil
}
