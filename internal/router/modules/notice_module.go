package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-noticeboard/internal/interface/http"
)

type NoticeModule struct {
	Handler *handlers.NoticeHandler
	Limit   Limiter
}

func NewNoticeModule(h *handlers.NoticeHandler, limit Limiter) *NoticeModule {
	return &NoticeModule{Handler: h, Limit: limit}
}

func (m *NoticeModule) Register(rg *gin.RouterGroup) {
	writeLimiter := m.Limit(30, time.Minute)

	rg.POST("/upload", writeLimiter, m.Handler.Upload)
	rg.POST("/upload_base64", writeLimiter, m.Handler.UploadBase64)
	rg.GET("/messages", m.Handler.Messages)

	api := rg.Group("/api")
	{
		api.POST("/save-msg", writeLimiter, m.Handler.SaveMessage)
		api.GET("/notice/latest", m.Handler.Latest)
		api.GET("/notices/search", m.Limit(120, time.Minute), m.Handler.Search)
	}
}
