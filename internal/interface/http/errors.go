package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-noticeboard/internal/application"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
	"github.com/oksasatya/go-noticeboard/pkg/response"
	"github.com/oksasatya/go-noticeboard/pkg/validation"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgInternalError = "Internal server error"
	msgBodyTooLarge  = "Request body too large"
)

// writeError maps service errors to responses. Client errors carry their own
// message; anything else is logged and hidden behind a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var appErr *application.Error
	if errors.As(err, &appErr) {
		response.Error(c, http.StatusBadRequest, appErr.Message, nil)
		return
	}
	helpers.LogError(logger, "request failed", err, logrus.Fields{
		"path":       c.FullPath(),
		"request_id": c.GetString("request_id"),
	})
	response.Error(c, http.StatusInternalServerError, msgInternalError, nil)
}

// bindJSON decodes the JSON body into obj. An empty body binds as {}, leaving
// required-field checks to the service.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// writeBindError answers a failed bind. Validation failures use fieldsMsg;
// undecodable bodies get the generic invalid-body message.
func writeBindError(c *gin.Context, err error, fieldsMsg string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge, nil)
	case validation.IsValidationError(err):
		response.Error(c, http.StatusBadRequest, fieldsMsg, validation.ToDetails(err))
	default:
		response.Error(c, http.StatusBadRequest, msgInvalidBody, validation.ToDetails(err))
	}
}
