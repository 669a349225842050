package dto

import (
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

type AppointmentListDTO struct {
	ID               string              `json:"id"`
	FullName         string              `json:"full_name"`
	MobileNumber     string              `json:"mobile_number"`
	Age              *int                `json:"age"`
	Gender           *string             `json:"gender"`
	Problem          *string             `json:"problem"`
	PreferredDate    timezone.Date       `json:"preferred_date"`
	PreferredTime    *timezone.TimeOfDay `json:"preferred_time"`
	Status           string              `json:"status"`
	PatientResponse  *string             `json:"patient_response"`
	AppointmentType  *string             `json:"appointment_type"`
	AssignedTo       *string             `json:"assigned_to"`
	AdminNote        *string             `json:"admin_note"`
	AssessmentImages []string            `json:"assessment_images"`
	IsToday          bool                `json:"is_today"`
}

func AppointmentList(a models.Appointment, today timezone.Date) AppointmentListDTO {
	images := []string(a.AssessmentImages)
	if images == nil {
		images = []string{}
	}
	return AppointmentListDTO{
		ID:               a.ID,
		FullName:         a.FullName,
		MobileNumber:     a.MobileNumber,
		Age:              a.Age,
		Gender:           a.Gender,
		Problem:          a.Problem,
		PreferredDate:    a.PreferredDate,
		PreferredTime:    a.PreferredTime,
		Status:           a.Status,
		PatientResponse:  a.PatientResponse,
		AppointmentType:  a.AppointmentType,
		AssignedTo:       a.AssignedTo,
		AdminNote:        a.AdminNote,
		AssessmentImages: images,
		IsToday:          a.PreferredDate == today,
	}
}
