// File: oasis/handlers/bookingSettings.go
package handlers

import (
	"oasis/models"
	"oasis/services/booking"
	"oasis/utils"

	"github.com/gin-gonic/gin"
)

// BookingSettingsHandler serves the weekly schedule and per-date availability.
type BookingSettingsHandler struct {
	Settings booking.SettingsService
	Engine   booking.AvailabilityEngine
	Ledger   booking.BookingLedger
}

func NewBookingSettingsHandler(settings booking.SettingsService, engine booking.AvailabilityEngine, ledger booking.BookingLedger) *BookingSettingsHandler {
	return &BookingSettingsHandler{Settings: settings, Engine: engine, Ledger: ledger}
}

// GetSettings handles GET /api/booking-settings/settings.
func (h *BookingSettingsHandler) GetSettings(c *gin.Context) {
	s, err := h.Settings.GetSettings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", s)
}

// UpdateSettings handles PUT /api/booking-settings/settings.
func (h *BookingSettingsHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	s, err := h.Settings.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Booking settings updated", s)
}

// UpdateDay handles PUT /api/booking-settings/settings/day/:day.
func (h *BookingSettingsHandler) UpdateDay(c *gin.Context) {
	var req models.UpdateDayRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	s, err := h.Settings.UpdateDay(c.Request.Context(), c.Param("day"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Day schedule updated", s)
}

// AvailableSlots handles GET /api/booking-settings/available-slots/:date.
func (h *BookingSettingsHandler) AvailableSlots(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("date", "%s", err.Error()))
		return
	}
	a, err := h.Engine.ComputeAvailableSlots(c.Request.Context(), date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, a.Message, a)
}

// BookableSlots handles GET /api/booking-settings/bookable-slots/:date.
func (h *BookingSettingsHandler) BookableSlots(c *gin.Context) {
	b, err := h.Ledger.BookableSlots(c.Request.Context(), c.Param("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, b.Message, b)
}
