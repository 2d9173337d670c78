package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-noticeboard/internal/application"
	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
	"github.com/oksasatya/go-noticeboard/pkg/response"
)

type NoticeHandler struct {
	Svc    *application.NoticeService
	Logger *logrus.Logger
}

func NewNoticeHandler(svc *application.NoticeService, logger *logrus.Logger) *NoticeHandler {
	return &NoticeHandler{Svc: svc, Logger: logger}
}

type uploadBase64Request struct {
	Username    string `json:"username"`
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64"`
}

type saveMessageRequest struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	Image    string `json:"image"`
}

type noticeResponse struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Text      *string   `json:"text"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNoticeResponse(n entity.Notice) noticeResponse {
	return noticeResponse{ID: n.ID, Username: n.Username, Text: n.Text, Image: n.Image, CreatedAt: n.CreatedAt}
}

// Upload accepts multipart form data with optional text, username and file field "image".
func (h *NoticeHandler) Upload(c *gin.Context) {
	text := c.PostForm("text")
	username := c.PostForm("username")

	var file *application.UploadedFile
	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		f, openErr := fh.Open()
		if openErr != nil {
			writeError(c, h.Logger, openErr)
			return
		}
		defer f.Close()
		file = &application.UploadedFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		writeBindError(c, err, msgInvalidBody)
		return
	}

	n, err := h.Svc.CreateFromFile(c.Request.Context(), username, text, file)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toNoticeResponse(*n), "Upload successful")
}

// UploadBase64 stores the inline image string as-is.
func (h *NoticeHandler) UploadBase64(c *gin.Context) {
	var req uploadBase64Request
	if err := bindJSON(c, &req); err != nil {
		writeBindError(c, err, msgInvalidBody)
		return
	}
	n, err := h.Svc.CreateFromInline(c.Request.Context(), req.Username, req.Text, req.ImageBase64)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toNoticeResponse(*n), "Upload successful")
}

func (h *NoticeHandler) SaveMessage(c *gin.Context) {
	var req saveMessageRequest
	if err := bindJSON(c, &req); err != nil {
		writeBindError(c, err, msgInvalidBody)
		return
	}
	n, err := h.Svc.CreateFromInline(c.Request.Context(), req.Username, req.Text, req.Image)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toNoticeResponse(*n), "Message saved")
}

// Latest returns the bare {text, image} document polled by the display page.
func (h *NoticeHandler) Latest(c *gin.Context) {
	latest, err := h.Svc.GetLatest(c.Request.Context())
	if err != nil {
		helpers.LogError(h.Logger, "latest notice failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, latest)
}

// Messages returns every notice, newest first, as a bare array.
func (h *NoticeHandler) Messages(c *gin.Context) {
	list, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]noticeResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNoticeResponse(n))
	}
	c.JSON(http.StatusOK, out)
}

func (h *NoticeHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchNotices(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	// written by hand so an empty hit list still serializes as []
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "search results",
		"data":       hits,
		"request_id": c.GetString("request_id"),
	})
}
