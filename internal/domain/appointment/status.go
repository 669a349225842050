package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusNew       Status = "New"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusNoShow    Status = "No Show"
)

var Statuses = []Status{StatusNew, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ===============================
// Patient Response
// ===============================

type PatientResponse string

// ResponseNone is the form's sentinel for "no response recorded"; it is
// stored as null.
const ResponseNone PatientResponse = "none"

const (
	ResponseWillCome          PatientResponse = "Will Come"
	ResponseWillNotCome       PatientResponse = "Will Not Come"
	ResponseCallNotAnswered   PatientResponse = "Call Not Answered"
	ResponseAskedToReschedule PatientResponse = "Asked to Reschedule"
)

var PatientResponses = []PatientResponse{
	ResponseWillCome,
	ResponseWillNotCome,
	ResponseCallNotAnswered,
	ResponseAskedToReschedule,
}

func (r PatientResponse) Valid() bool {
	for _, v := range PatientResponses {
		if r == v {
			return true
		}
	}
	return false
}

// ===============================
// Appointment Type
// ===============================

type Type string

const (
	TypeNewPatient Type = "New Patient"
	TypeFollowUp   Type = "Follow-up"
)

func (t Type) Valid() bool {
	return t == TypeNewPatient || t == TypeFollowUp
}
