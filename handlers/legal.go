package handlers

import (
	"oasis/models"
	"oasis/services/content"
	"oasis/utils"

	"github.com/gin-gonic/gin"
)

// LegalHandler adds slug lookup on top of the generic content routes.
type LegalHandler struct {
	*ContentHandler[models.LegalPage]
	Legal *content.LegalService
}

func NewLegalHandler(svc *content.LegalService) *LegalHandler {
	return &LegalHandler{
		ContentHandler: NewContentHandler[models.LegalPage](svc, "Legal page"),
		Legal:          svc,
	}
}

// GetBySlug handles GET /api/legal/:slug.
func (h *LegalHandler) GetBySlug(c *gin.Context) {
	page, err := h.Legal.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", page)
}

// Upsert handles PUT /api/legal/:slug (admin).
func (h *LegalHandler) Upsert(c *gin.Context) {
	var page models.LegalPage
	if !utils.BindJSON(c, &page) {
		return
	}
	saved, err := h.Legal.Upsert(c.Request.Context(), c.Param("slug"), &page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Legal page saved", saved)
}

// DeleteBySlug handles DELETE /api/legal/:slug (admin).
func (h *LegalHandler) DeleteBySlug(c *gin.Context) {
	if err := h.Legal.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Legal page reset to default", nil)
}
