package resolve_slot

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAppointmentTime возвращается, когда дату невозможно разобрать
	// Частный случай ErrInvalidInput
	ErrInvalidAppointmentTime = fmt.Errorf("%w: invalid appointment time", ErrInvalidInput)

	// ErrNoAvailableSlot возвращается, когда поиск слота исчерпал лимит итераций
	ErrNoAvailableSlot = errors.New("resolve_slot: no available slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_slot: invalid input data")
)
