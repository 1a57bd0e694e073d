package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/MeetChat/internal/adapters/signal"
	"github.com/dkeye/MeetChat/internal/app"
	"github.com/dkeye/MeetChat/internal/app/orch"
	"github.com/dkeye/MeetChat/internal/auth"
	"github.com/dkeye/MeetChat/internal/config"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/dkeye/MeetChat/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *gin.Engine
	store     *store.MemoryStore
	orch      *orch.Orchestrator
	lifecycle *app.Lifecycle
	jwt       *auth.JWTManager
	ws        *signal.SignalWSController
	cancel    context.CancelFunc
}

func newTestServer(t *testing.T, authMode string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Mode:       "test",
		Secret:     "session-secret",
		ReadLimit:  4096,
		WriteWait:  time.Second,
		SendBuffer: 16,
		Auth:       config.AuthConfig{Mode: authMode, JWTSecret: "jwt-secret"},
	}
	ms := store.NewMemoryStore()
	lc := app.NewLifecycle(ms, time.Second)
	o := orch.New(ms, lc, app.SimplePolicy{}, orch.Options{
		JoinTimeout:       time.Second,
		RequireMembership: true,
		MaxMessageLen:     1000,
	})
	jwtm := auth.NewJWTManager(cfg.Auth.JWTSecret, time.Hour)

	ws := signal.NewSignalWSController(o, signal.SettingsFrom(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		ws.Wait()
		lc.Wait()
	})
	return &testServer{
		router:    SetupRouter(ctx, cfg, o, ms, jwtm, ws),
		store:     ms,
		orch:      o,
		lifecycle: lc,
		jwt:       jwtm,
		ws:        ws,
		cancel:    cancel,
	}
}

func (s *testServer) token(t *testing.T, user, name string) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(domain.Identity{UserID: domain.UserID(user), DisplayName: name})
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(""))
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)

	var body map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

