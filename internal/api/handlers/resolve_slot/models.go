package resolve_slot

import (
	"time"

	resolveSlot "github.com/m04kA/SMC-ShowingService/internal/usecase/resolve_slot"
)

// SlotResponse предлагаемый слот
type SlotResponse struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// WarningResponse некритичный сбой при загрузке данных календаря
type WarningResponse struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ResolveSlotResponse HTTP response model
type ResolveSlotResponse struct {
	OwnerID         int64             `json:"ownerId"`
	Requested       string            `json:"requested"`
	DurationMinutes int               `json:"duration"`
	Adjusted        bool              `json:"adjusted"`
	Bypassed        bool              `json:"bypassed"`
	Slots           []SlotResponse    `json:"slots"`
	Warnings        []WarningResponse `json:"warnings"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(ownerID int64, resp *resolveSlot.Response) *ResolveSlotResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Date:  s.Date,
			Time:  s.TimeLabel,
			Start: s.Start.Format(time.RFC3339),
			End:   s.End.Format(time.RFC3339),
		})
	}

	warnings := make([]WarningResponse, 0, len(resp.Warnings))
	for _, w := range resp.Warnings {
		warnings = append(warnings, WarningResponse{Step: w.Step, Message: w.Message})
	}

	return &ResolveSlotResponse{
		OwnerID:         ownerID,
		Requested:       resp.Requested.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Adjusted:        resp.Adjusted,
		Bypassed:        resp.Bypassed,
		Slots:           slots,
		Warnings:        warnings,
	}
}
