package middleware

import (
	"github.com/gin-gonic/gin"
)

// ForwardedHeaders are consulted, in order, when the direct peer is a trusted proxy.
var ForwardedHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// TrustProxies makes c.ClientIP() honor ForwardedHeaders only for requests
// whose remote address is in proxies. A nil list trusts no peer.
func TrustProxies(e *gin.Engine, proxies []string) error {
	e.ForwardedByClientIP = true
	e.RemoteIPHeaders = ForwardedHeaders
	return e.SetTrustedProxies(proxies)
}

// RealIP stores c.ClientIP() in the Gin context under "real_ip".
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
