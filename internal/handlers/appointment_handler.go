package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-frontdesk/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/httpresp"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/middleware"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-frontdesk/internal/usecase/appointment"
)

// Watcher publishes the replica version after each change.
type Watcher interface {
	Watch() (<-chan uint64, func())
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list    *ucAppointment.ListAppointments
	refresh *ucAppointment.RefreshAppointments
	save    *ucAppointment.SaveAppointment
	dates   *ucAppointment.ListFollowUpDates
	watcher Watcher
	logger  *slog.Logger
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	refresh *ucAppointment.RefreshAppointments,
	save *ucAppointment.SaveAppointment,
	dates *ucAppointment.ListFollowUpDates,
	watcher Watcher,
	logger *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:    list,
		refresh: refresh,
		save:    save,
		dates:   dates,
		watcher: watcher,
		logger:  logger,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type SaveAppointmentRequest struct {
	domain.FieldUpdates
	FollowUpDates []timezone.Date `json:"follow_up_dates"`
}

type phaseResponse struct {
	OK        bool   `json:"ok"`
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`
}

type primaryResponse struct {
	phaseResponse
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

type followUpResponse struct {
	phaseResponse
	Requested    int                  `json:"requested"`
	Created      int                  `json:"created"`
	Appointments []models.Appointment `json:"appointments"`
}

type SaveAppointmentResponse struct {
	State    ucAppointment.SaveState `json:"state"`
	Message  string                  `json:"message"`
	Primary  primaryResponse         `json:"primary"`
	FollowUp *followUpResponse       `json:"follow_up,omitempty"`
}

func phase(err error) phaseResponse {
	if err == nil {
		return phaseResponse{OK: true}
	}
	return phaseResponse{ErrorCode: httperr.CodeOf(err), Error: httperr.MessageOf(err)}
}

func toSaveResponse(out ucAppointment.SaveOutcome) SaveAppointmentResponse {
	res := SaveAppointmentResponse{
		State:   out.State,
		Message: out.Message(),
		Primary: primaryResponse{
			phaseResponse: phase(out.Primary.Err),
			Appointment:   out.Primary.Appointment,
		},
	}
	if out.FollowUp != nil {
		created := out.FollowUp.Appointments
		if created == nil {
			created = []models.Appointment{}
		}
		res.FollowUp = &followUpResponse{
			phaseResponse: phase(out.FollowUp.Err),
			Requested:     out.FollowUp.Requested,
			Created:       out.FollowUp.Created(),
			Appointments:  created,
		}
	}
	return res
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "date must be YYYY-MM-DD")
		return
	}

	res := h.list.Execute(domain.Filter{
		Search: c.Query("search"),
		Date:   date,
		Status: c.Query("status"),
	})
	httpresp.OK(c, res)
}

func (h *AppointmentHandler) Counters(c *gin.Context) {
	httpresp.OK(c, h.list.Execute(domain.Filter{}).Counters)
}

// ======================================================
// REFRESH
// ======================================================

func (h *AppointmentHandler) Refresh(c *gin.Context) {
	n, err := h.refresh.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"count": n})
}

// ======================================================
// SAVE
// ======================================================

// Save answers 200 whenever the primary update went through, even if the
// follow-up batch failed; the body tells the two phases apart.
func (h *AppointmentHandler) Save(c *gin.Context) {
	var req SaveAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	// A save that reached the server runs to completion even if the client
	// goes away; only the response is lost.
	ctx := context.WithoutCancel(c.Request.Context())
	out := h.save.Execute(ctx, ucAppointment.SaveInput{
		ActorID:       middleware.UserID(c),
		AppointmentID: c.Param("id"),
		Fields:        req.FieldUpdates,
		FollowUpDates: req.FollowUpDates,
	})

	status := http.StatusOK
	if out.State == ucAppointment.StatePrimaryFailed {
		status = httperr.StatusFor(httperr.CodeOf(out.Primary.Err))
	}
	c.JSON(status, toSaveResponse(out))
}

// ======================================================
// FOLLOW-UP PICKER
// ======================================================

func (h *AppointmentHandler) FollowUpDates(c *gin.Context) {
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "end must be YYYY-MM-DD")
		return
	}
	selected, err := parseDateList(c.QueryArray("selected"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "selected must be YYYY-MM-DD dates")
		return
	}

	httpresp.OK(c, h.dates.Execute(end, selected))
}

// ======================================================
// STREAM
// ======================================================

// Stream pushes a "version" event whenever the replica changes. Clients
// re-list on each event.
func (h *AppointmentHandler) Stream(c *gin.Context) {
	versions, stop := h.watcher.Watch()
	defer stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("version", gin.H{"version": h.list.Execute(domain.Filter{}).Version})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v, ok := <-versions:
			if !ok {
				return false
			}
			c.SSEvent("version", gin.H{"version": v})
			return true
		}
	})
	h.logger.Debug("stream closed", "user_id", middleware.UserID(c))
}
