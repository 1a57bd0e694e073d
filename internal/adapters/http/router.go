package http

import (
	"context"
	"net/http"

	"github.com/dkeye/MeetChat/internal/adapters/signal"
	"github.com/dkeye/MeetChat/internal/app/orch"
	"github.com/dkeye/MeetChat/internal/auth"
	"github.com/dkeye/MeetChat/internal/config"
	"github.com/dkeye/MeetChat/internal/core"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SetupRouter wires REST and the WebSocket endpoint. jwtm may be nil in payload mode.
// ctx bounds every WebSocket connection; ws.Wait reports when they are all gone.
func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, store core.MeetingStore, jwtm *auth.JWTManager, ws *signal.SignalWSController) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	sessionStore := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("MeetChatSessions", sessionStore))
	r.Use(ClientTokenMiddleware())
	r.Use(IdentityMiddleware(jwtm, cfg.Auth.Mode))

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
		r.GET("/", func(c *gin.Context) {
			c.File(cfg.StaticPath + "/index.html")
		})
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": len(o.Groups.List())})
	})

	log.Info().Str("module", "adapters.http").Str("auth", cfg.Auth.Mode).Msg("router setup")

	api := r.Group("/api")

	api.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("client", c.GetString(clientTokenKey)).Msg("ws endpoint hit")
		ws.HandleSignal(ctx, c)
	})

	meetings := NewMeetingHandler(store, o)
	m := api.Group("/meetings", RequireIdentity())
	m.POST("", meetings.Create)
	m.GET("/:id", meetings.Get)
	m.POST("/:id/end", meetings.End)
	m.GET("/:id/participants", meetings.Participants)

	return r
}
