package schedule_appointment

import (
	"context"

	scheduleAppointment "github.com/m04kA/SMC-ShowingService/internal/usecase/schedule_appointment"
)

type ScheduleAppointmentUseCase interface {
	Execute(ctx context.Context, req *scheduleAppointment.Request) (*scheduleAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
