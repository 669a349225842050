package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

type Appointment struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	FullName     string  `gorm:"size:150;not null" json:"full_name"`
	MobileNumber string  `gorm:"size:20;not null" json:"mobile_number"`
	Age          *int    `json:"age"`
	Gender       *string `gorm:"size:20" json:"gender"`
	Problem      *string `gorm:"type:text" json:"problem"`

	PreferredDate timezone.Date       `gorm:"type:date;not null;index" json:"preferred_date"`
	PreferredTime *timezone.TimeOfDay `gorm:"type:time" json:"preferred_time"`

	Status          string  `gorm:"size:20;not null;default:'New'" json:"status"`
	PatientResponse *string `gorm:"size:30" json:"patient_response"`
	AppointmentType *string `gorm:"size:20" json:"appointment_type"`
	AssignedTo      *string `gorm:"size:100" json:"assigned_to"`
	AdminNote       *string `gorm:"type:text" json:"admin_note"`

	AssessmentImages StringList `gorm:"type:jsonb" json:"assessment_images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the immutable identity for rows created locally.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Clone returns a copy that shares no pointers with a.
func (a Appointment) Clone() Appointment {
	out := a
	out.Age = clonePtr(a.Age)
	out.Gender = clonePtr(a.Gender)
	out.Problem = clonePtr(a.Problem)
	out.PreferredTime = clonePtr(a.PreferredTime)
	out.PatientResponse = clonePtr(a.PatientResponse)
	out.AppointmentType = clonePtr(a.AppointmentType)
	out.AssignedTo = clonePtr(a.AssignedTo)
	out.AdminNote = clonePtr(a.AdminNote)
	if a.AssessmentImages != nil {
		out.AssessmentImages = append(StringList(nil), a.AssessmentImages...)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
