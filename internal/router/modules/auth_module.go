package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-noticeboard/internal/interface/http"
)

// Limiter builds a rate-limit middleware allowing max requests per window.
type Limiter func(max int, window time.Duration) gin.HandlerFunc

type AuthModule struct {
	Handler *handlers.AuthHandler
	Limit   Limiter
}

func NewAuthModule(h *handlers.AuthHandler, limit Limiter) *AuthModule {
	return &AuthModule{Handler: h, Limit: limit}
}

// Register mounts POST /signup and POST /login, each limited per IP.
func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", m.Limit(10, time.Minute), m.Handler.Signup)
	rg.POST("/login", m.Limit(20, time.Minute), m.Handler.Login)
}
