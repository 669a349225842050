package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
)

// Repository is the remote appointment store. Implementations classify
// their failures into httperr taxonomy codes.
type Repository interface {
	// FetchAll returns every row ordered by preferred date then time.
	FetchAll(ctx context.Context) ([]models.Appointment, error)

	// Update writes columns onto one row and returns the row as the store
	// confirmed it.
	Update(
		ctx context.Context,
		id string,
		columns map[string]any,
	) (*models.Appointment, error)

	// InsertMany creates all rows in one batch.
	InsertMany(
		ctx context.Context,
		rows []models.Appointment,
	) ([]models.Appointment, error)
}
