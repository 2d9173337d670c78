package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-noticeboard/internal/application"
	"github.com/oksasatya/go-noticeboard/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		writeBindError(c, err, application.ErrCredentialsRequired.Message)
		return
	}
	if err := h.Svc.Signup(c.Request.Context(), req.Username, req.Password); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, "Signup successful")
}

// Login only verifies credentials; no session or token is issued.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		writeBindError(c, err, application.ErrCredentialsRequired.Message)
		return
	}
	if err := h.Svc.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, "Login successful")
}
