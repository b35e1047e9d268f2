package get_owner_appointments

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
// from/to принимаются в RFC3339 или как дата YYYY-MM-DD (начало дня в UTC)
func ToServiceRequest(ownerID, userID int64, statusStr, fromStr, toStr string) (*models.ListByOwnerRequest, error) {
	req := &models.ListByOwnerRequest{
		UserID:  userID,
		OwnerID: ownerID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if fromStr != "" {
		from, err := parseInstant(fromStr)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := parseInstant(toStr)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		req.To = &to
	}

	return req, nil
}

func parseInstant(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
