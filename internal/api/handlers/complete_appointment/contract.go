package complete_appointment

import (
	"context"

	"github.com/m04kA/SMC-ShowingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Complete(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
