package scheduling

import "errors"

var (
	// ErrInvalidAppointmentTime is returned when the requested date cannot be parsed
	ErrInvalidAppointmentTime = errors.New("scheduling: invalid appointment time")

	// ErrNoAvailableSlot is returned when slot search exhausts its iteration bound
	ErrNoAvailableSlot = errors.New("scheduling: no available slot")
)
