// File: oasis/handlers/blockedDates.go
package handlers

import (
	"oasis/models"
	"oasis/services/booking"
	"oasis/utils"

	"github.com/gin-gonic/gin"
)

type BlockedDateHandler struct {
	Svc booking.BlockedDateService
}

func NewBlockedDateHandler(svc booking.BlockedDateService) *BlockedDateHandler {
	return &BlockedDateHandler{Svc: svc}
}

// List handles GET /api/blocked-dates (admin).
func (h *BlockedDateHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", items)
}

// ListActive handles GET /api/blocked-dates/active.
func (h *BlockedDateHandler) ListActive(c *gin.Context) {
	items, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", items)
}

// Block handles POST /api/blocked-dates.
func (h *BlockedDateHandler) Block(c *gin.Context) {
	var req models.BlockDateRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	b, err := h.Svc.BlockDate(c.Request.Context(), req.Date, req.Reason, req.TimeSlots)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Date blocked", b)
}

// BlockBulk handles POST /api/blocked-dates/bulk. Per-date failures are reported in the
// result body, not as an error status.
func (h *BlockedDateHandler) BlockBulk(c *gin.Context) {
	var req models.BulkBlockRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	res, err := h.Svc.BlockDatesBulk(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Bulk block processed", res)
}

// Toggle handles PUT /api/blocked-dates/:id/toggle.
func (h *BlockedDateHandler) Toggle(c *gin.Context) {
	b, err := h.Svc.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Blocked date toggled", b)
}

// Update handles PUT /api/blocked-dates/:id.
func (h *BlockedDateHandler) Update(c *gin.Context) {
	var req models.UpdateBlockedDateRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Blocked date updated", b)
}

// Delete handles DELETE /api/blocked-dates/:id.
func (h *BlockedDateHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Blocked date deleted", nil)
}

// RemoveSlot handles DELETE /api/blocked-dates/:id/slot/:slot. A full-day block has no
// slots to remove and answers 409; update it with blockedTimeSlots instead.
func (h *BlockedDateHandler) RemoveSlot(c *gin.Context) {
	b, deleted, err := h.Svc.RemoveSlot(c.Request.Context(), c.Param("id"), c.Param("slot"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if deleted {
		utils.Success(c, "Last blocked slot removed, date unblocked", gin.H{"deleted": true})
		return
	}
	utils.Success(c, "Time slot unblocked", b)
}

// Check handles GET /api/blocked-dates/check/:date.
func (h *BlockedDateHandler) Check(c *gin.Context) {
	res, err := h.Svc.Check(c.Request.Context(), c.Param("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", res)
}
