package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-frontdesk/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) FetchAll(
	ctx context.Context,
) ([]models.Appointment, error) {

	var list []models.Appointment
	err := r.db.WithContext(ctx).
		Order("preferred_date ASC").
		Order("preferred_time ASC NULLS LAST").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, classify(err)
	}
	return list, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	id string,
	columns map[string]any,
) (*models.Appointment, error) {

	var row models.Appointment
	res := r.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(columns)

	if res.Error != nil {
		return nil, classify(res.Error)
	}
	// row-level policies hide rows instead of rejecting the statement
	if res.RowsAffected == 0 {
		return nil, httperr.New(httperr.CodeNotFound, "appointment not found")
	}
	return &row, nil
}

func (r *AppointmentGormRepository) InsertMany(
	ctx context.Context,
	rows []models.Appointment,
) ([]models.Appointment, error) {

	if len(rows) == 0 {
		return []models.Appointment{}, nil
	}

	batch := make([]models.Appointment, len(rows))
	copy(batch, rows)

	if err := r.db.WithContext(ctx).Create(&batch).Error; err != nil {
		return nil, classify(err)
	}
	return batch, nil
}
