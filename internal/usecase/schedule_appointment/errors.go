package schedule_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAppointmentTime возвращается, когда дату встречи невозможно разобрать
	// Частный случай ErrInvalidInput
	ErrInvalidAppointmentTime = fmt.Errorf("%w: invalid appointment time", ErrInvalidInput)

	// ErrNoAvailableSlot возвращается, когда поиск слота исчерпал лимит итераций
	ErrNoAvailableSlot = errors.New("schedule_appointment: no available slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	// Вместе с ErrNoAvailableSlot это единственные критичные ошибки планирования
	ErrInvalidInput = errors.New("schedule_appointment: invalid input data")

	// ErrSlotTaken возвращается стратегией сохранения, если слот успели занять после чтения календаря
	ErrSlotTaken = errors.New("schedule_appointment: slot was taken concurrently")

	// ErrAttemptSkipped возвращается стратегией сохранения, которая неприменима к запросу
	ErrAttemptSkipped = errors.New("schedule_appointment: persistence attempt skipped")
)
