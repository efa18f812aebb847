// Package server exposes the credential store, the pending prompts and the
// resolver over a small HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/authn/resolver"
	"github.com/wuxler/ruacred/pkg/prompt"
	"github.com/wuxler/ruacred/pkg/xlog"
)

// Preferences is the preference file edited through the API.
type Preferences interface {
	resolver.Preferences
	Set(key string, value any)
	Save() error
}

// Options are the collaborators served by the API.
type Options struct {
	Store    *credentials.Store
	Resolver *resolver.Resolver
	Queue    *prompt.Queue
	// Preferences may be nil, then prompting is disabled unless a resolve
	// request asks for it.
	Preferences Preferences
}

// New returns a Server for opts.
func New(opts Options) *Server {
	return &Server{opts: opts}
}

// Server holds the HTTP handlers.
type Server struct {
	opts Options
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), accessLog())

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := router.Group("/v1")
	{
		basic := v1.Group("/credentials/basic")
		basic.GET("", s.listBasic)
		basic.POST("", s.addBasic)
		basic.DELETE("", s.deleteBasic)
		basic.GET("/:index", s.getBasicAt)
		basic.DELETE("/:index", s.deleteBasicAt)

		domain := v1.Group("/credentials/domain")
		domain.GET("", s.listDomain)
		domain.POST("", s.addDomain)
		domain.DELETE("", s.deleteDomain)
		domain.GET("/:index", s.getDomainAt)
		domain.DELETE("/:index", s.deleteDomainAt)

		v1.GET("/prompts", s.listPrompts)
		v1.POST("/prompts/:id", s.answerPrompt)
		v1.DELETE("/prompts/:id", s.cancelPrompt)

		v1.POST("/resolve", s.resolve)

		v1.GET("/preferences", s.getPreferences)
		v1.PUT("/preferences", s.putPreferences)
	}
	return router
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ctx := c.Request.Context()
		xlog.C(ctx).DebugContext(ctx, "request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
