package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
)

type Snapshotter interface {
	LoadSnapshot(ctx context.Context) ([]models.Appointment, error)
}

// RefreshAppointments reloads the replica on demand; it is the user's retry
// after a failed load.
type RefreshAppointments struct {
	store Snapshotter
}

func NewRefreshAppointments(store Snapshotter) *RefreshAppointments {
	return &RefreshAppointments{store: store}
}

func (uc *RefreshAppointments) Execute(ctx context.Context) (int, error) {
	rows, err := uc.store.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
