package handlers

import (
	"oasis/models"
	"oasis/services/contact"
	"oasis/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	Svc contact.ContactService
}

func NewContactHandler(svc contact.ContactService) *ContactHandler {
	return &ContactHandler{Svc: svc}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var msg models.ContactMessage
	if !utils.BindJSON(c, &msg) {
		return
	}
	saved, err := h.Svc.Submit(c.Request.Context(), &msg)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Thank you, we will get back to you soon", gin.H{"id": saved.ID})
}

// List handles GET /api/contact (admin).
func (h *ContactHandler) List(c *gin.Context) {
	msgs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", msgs)
}

// MarkRead handles PATCH /api/contact/:id/read (admin).
func (h *ContactHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Message marked as read", nil)
}

// Delete handles DELETE /api/contact/:id (admin).
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Message deleted", nil)
}
