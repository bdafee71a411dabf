package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"paylink/internal/models/request_models"
	"paylink/internal/models/response_models"
	"paylink/pkg/middleware"
	"paylink/pkg/utils"
)

// AuthController is the thin admin gate: a single password compare that
// issues the session token. The core only ever sees the middleware's
// yes/no outcome.
type AuthController struct {
	adminPassword string
}

func NewAuthController(adminPassword string) *AuthController {
	return &AuthController{
		adminPassword: adminPassword,
	}
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var request request_models.AdminLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !utils.CheckAdminPassword(ac.adminPassword, request.Password) {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := utils.CreateAdminToken()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.SetCookie(middleware.AdminCookieName, token, 12*3600, "/", "", false, true)
	utils.RespondSuccess(c, response_models.AdminLoginResponse{Token: token}, "Logged in")
}
