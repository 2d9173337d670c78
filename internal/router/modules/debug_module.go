package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
)

type DebugModule struct {
	Limit Limiter
}

func NewDebugModule(limit Limiter) *DebugModule { return &DebugModule{Limit: limit} }

// Register exposes expvar counters at /api/debug/vars, rate-limited per IP.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/api/debug/vars", m.Limit(120, time.Minute), gin.WrapH(expvar.Handler()))
}
