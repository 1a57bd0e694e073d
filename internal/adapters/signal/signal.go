package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/MeetChat/internal/app/orch"
	"github.com/dkeye/MeetChat/internal/auth"
	"github.com/dkeye/MeetChat/internal/config"
	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

type Settings struct {
	AuthMode   string
	ReadLimit  int64
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
	SendBuffer int
}

func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		AuthMode:   cfg.Auth.Mode,
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
		PongWait:   cfg.PongWait,
		WriteWait:  cfg.WriteWait,
		SendBuffer: cfg.SendBuffer,
	}
}

type SignalWSController struct {
	Orch     *orch.Orchestrator
	settings Settings

	// conns counts live read loops; each one runs Disconnect before it finishes.
	conns sync.WaitGroup
}

func NewSignalWSController(o *orch.Orchestrator, settings Settings) *SignalWSController {
	if settings.SendBuffer <= 0 {
		settings.SendBuffer = 32
	}
	if settings.WriteWait <= 0 {
		settings.WriteWait = 5 * time.Second
	}
	return &SignalWSController{Orch: o, settings: settings}
}

// WsPeer is one WebSocket connection as seen by the coordinator.
type WsPeer struct {
	id   domain.ConnID
	conn *websocket.Conn
	send chan core.Frame
	// identity is what the upgrade request authenticated as, if anything.
	identity domain.Identity

	mu     sync.RWMutex
	closed bool
}

func (c *WsPeer) ID() domain.ConnID { return c.id }

func (c *WsPeer) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsPeer) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	connID := domain.ConnID(uuid.NewString())
	logger := log.With().Str("module", "signal").Str("conn", string(connID)).Logger()

	// counted before the upgrade hijacks the connection away from http.Server
	ctl.conns.Add(1)
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ctl.conns.Done()
		logger.Error().Err(err).Msg("ws upgrade")
		return
	}

	peer := &WsPeer{
		id:   connID,
		conn: ws,
		send: make(chan core.Frame, ctl.settings.SendBuffer),
	}
	if v, ok := c.Get(auth.IdentityKey); ok {
		peer.identity, _ = v.(domain.Identity)
	}
	logger.Info().Str("user", string(peer.identity.UserID)).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, peer)
	go ctl.readPump(ctx, cancel, peer)
}

// Wait blocks until every connection has been torn down and reported to the
// coordinator. Cancel the context given to HandleSignal first.
func (ctl *SignalWSController) Wait() {
	ctl.conns.Wait()
}
