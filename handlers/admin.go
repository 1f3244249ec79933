// File: oasis/handlers/admin.go
package handlers

import (
	"oasis/models"
	"oasis/services/admin"
	"oasis/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler issues admin tokens.
type AdminHandler struct {
	AdminService admin.AdminService
}

func NewAdminHandler(as admin.AdminService) *AdminHandler {
	return &AdminHandler{AdminService: as}
}

// Login handles POST /api/admin/login.
func (ah *AdminHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	token, err := ah.AdminService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		getLogger(c).Debug("admin login rejected", zap.String("email", req.Email))
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Login successful", gin.H{"token": token})
}
