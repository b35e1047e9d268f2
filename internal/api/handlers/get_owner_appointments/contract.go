package get_owner_appointments

import (
	"context"

	"github.com/m04kA/SMC-ShowingService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByOwner(ctx context.Context, req *models.ListByOwnerRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
