package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/validators"
)

// FieldUpdates is one edit-form submission. A nil field is left untouched;
// an empty value clears the column (except Status, which is required).
type FieldUpdates struct {
	Status           *string   `json:"status"`
	PatientResponse  *string   `json:"patient_response"`
	AppointmentType  *string   `json:"appointment_type"`
	AssignedTo       *string   `json:"assigned_to"`
	AdminNote        *string   `json:"admin_note"`
	AssessmentImages *[]string `json:"assessment_images"`
}

// ===============================
// Validations
// ===============================

func (f FieldUpdates) Validate() error {
	if f.Status != nil && !Status(*f.Status).Valid() {
		return httperr.Newf(httperr.CodeValidation, "invalid status: %s", *f.Status)
	}
	if f.PatientResponse != nil && !isCleared(*f.PatientResponse) &&
		!PatientResponse(*f.PatientResponse).Valid() {
		return httperr.Newf(httperr.CodeValidation, "invalid patient response: %s", *f.PatientResponse)
	}
	if f.AppointmentType != nil && *f.AppointmentType != "" && !Type(*f.AppointmentType).Valid() {
		return httperr.Newf(httperr.CodeValidation, "invalid appointment type: %s", *f.AppointmentType)
	}
	for name, v := range map[string]*string{"assigned_to": f.AssignedTo, "admin_note": f.AdminNote} {
		if v != nil && validators.HasControlChars(*v) {
			return httperr.Newf(httperr.CodeValidation, "%s contains control characters", name)
		}
	}
	if f.AssessmentImages != nil {
		for _, p := range *f.AssessmentImages {
			if p == "" || validators.HasControlChars(p) {
				return httperr.New(httperr.CodeValidation, "invalid assessment image reference")
			}
		}
	}
	return nil
}

// Columns renders the update as column assignments, stamping updated_at.
func (f FieldUpdates) Columns(now time.Time) map[string]any {
	cols := map[string]any{"updated_at": now}
	if f.Status != nil {
		cols["status"] = *f.Status
	}
	if f.PatientResponse != nil {
		cols["patient_response"] = nullable(*f.PatientResponse, isCleared)
	}
	if f.AppointmentType != nil {
		cols["appointment_type"] = nullable(*f.AppointmentType, isEmpty)
	}
	if f.AssignedTo != nil {
		cols["assigned_to"] = nullable(*f.AssignedTo, isEmpty)
	}
	if f.AdminNote != nil {
		cols["admin_note"] = nullable(*f.AdminNote, isEmpty)
	}
	if f.AssessmentImages != nil {
		if len(*f.AssessmentImages) == 0 {
			cols["assessment_images"] = nil
		} else {
			cols["assessment_images"] = models.StringList(*f.AssessmentImages)
		}
	}
	return cols
}

func isEmpty(s string) bool { return s == "" }

func isCleared(s string) bool {
	return s == "" || PatientResponse(s) == ResponseNone
}

func nullable(s string, cleared func(string) bool) any {
	if cleared(s) {
		return nil
	}
	return s
}
