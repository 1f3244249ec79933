// File: oasis/handlers/appointments.go
package handlers

import (
	"time"

	"oasis/models"
	"oasis/services/booking"
	"oasis/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	Ledger booking.BookingLedger
}

func NewAppointmentHandler(ledger booking.BookingLedger) *AppointmentHandler {
	return &AppointmentHandler{Ledger: ledger}
}

// Create handles POST /api/appointments.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	appt, err := h.Ledger.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("appointment booked",
		zap.String("id", appt.ID),
		zap.String("date", models.FormatDate(appt.AppointmentDate)),
		zap.String("time", appt.AppointmentTime))
	utils.Created(c, "Appointment booked", appt)
}

// List handles GET /api/appointments?date=&from=&to=&status= (admin).
func (h *AppointmentHandler) List(c *gin.Context) {
	filter, err := appointmentFilter(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	appts, err := h.Ledger.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", appts)
}

func appointmentFilter(c *gin.Context) (models.AppointmentFilter, error) {
	var f models.AppointmentFilter
	for _, q := range []struct {
		name string
		dst  **time.Time
	}{{"date", &f.Date}, {"from", &f.From}, {"to", &f.To}} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			return f, utils.NewValidationError(q.name, "%s", err.Error())
		}
		*q.dst = &d
	}
	f.Status = models.AppointmentStatus(c.Query("status"))
	return f, nil
}

// BookedSlots handles GET /api/appointments/booked-slots?date=.
func (h *AppointmentHandler) BookedSlots(c *gin.Context) {
	res, err := h.Ledger.ListBookedSlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", res)
}

// Get handles GET /api/appointments/:id (admin).
func (h *AppointmentHandler) Get(c *gin.Context) {
	appt, err := h.Ledger.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", appt)
}

// UpdateStatus handles PATCH /api/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	appt, err := h.Ledger.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointment status updated", appt)
}

// Cancel handles PATCH /api/appointments/:id/cancel. The body is optional.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req models.CancelAppointmentRequest
	if c.Request.ContentLength > 0 && !utils.BindJSON(c, &req) {
		return
	}
	appt, err := h.Ledger.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointment cancelled", appt)
}

// Delete handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.Ledger.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointment deleted", nil)
}

// ClearAll handles DELETE /api/appointments/clear-all (admin).
func (h *AppointmentHandler) ClearAll(c *gin.Context) {
	n, err := h.Ledger.ClearAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "All appointments cleared", gin.H{"deleted": n})
}
