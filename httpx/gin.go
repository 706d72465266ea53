package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GinGroupHandler is implemented by API groups that register themselves under
// a base path with their own middlewares.
type GinGroupHandler interface {
	BaseURL() string
	Middlewares() []gin.HandlerFunc
	Register(group *gin.RouterGroup)
}

// RegisterGinGroupHandler mounts h under parent at h.BaseURL() with its
// middlewares applied.
func RegisterGinGroupHandler(parent *gin.RouterGroup, h GinGroupHandler) {
	group := parent.Group(h.BaseURL())
	for _, m := range h.Middlewares() {
		group.Use(m)
	}
	h.Register(group)
}

// PromHandler adapts a plain http.Handler (typically promhttp.Handler()) to gin.
func PromHandler(h http.Handler) gin.HandlerFunc {
	return gin.WrapH(h)
}

var reqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "HTTP requests served, by method, path and status.",
}, []string{"method", "path", "status"})

// PromMiddleware counts served requests. A nil opts argument keeps defaults.
func PromMiddleware(_ *prometheus.CounterOpts) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		reqTotal.WithLabelValues(ctx.Request.Method, path, http.StatusText(ctx.Writer.Status())).Inc()
	}
}
