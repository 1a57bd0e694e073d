package signal

import (
	"context"
	"time"

	"github.com/dkeye/MeetChat/internal/protocol"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsPeer) {
	var ping <-chan time.Time
	if ctl.settings.PingPeriod > 0 {
		ticker := time.NewTicker(ctl.settings.PingPeriod)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(c.id)).Msg("writePump ctx done")
			return
		case <-ping:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.settings.WriteWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("writePump ping")
				c.Close()
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Str("conn", string(c.id)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.settings.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("writePump write error")
				c.Close()
				return
			}
		}
	}
}

// readPump handles the connection's events strictly one after another, which
// is what gives a single connection its ordering guarantee.
func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, c *WsPeer) {
	stop := context.AfterFunc(ctx, c.Close)
	defer func() {
		stop()
		ctl.Orch.Disconnect(c.id)
		c.Close()
		cancel()
		log.Info().Str("module", "signal").Str("conn", string(c.id)).Msg("readPump closing")
		ctl.conns.Done()
	}()

	if ctl.settings.ReadLimit > 0 {
		c.conn.SetReadLimit(ctl.settings.ReadLimit)
	}
	if wait := ctl.settings.PongWait; wait > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(wait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(wait))
		})
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(c.id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(ctx, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(ctx context.Context, c *WsPeer, data []byte) {
	env, err := protocol.Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad envelope")
		ctl.sendError(c, err)
		return
	}

	switch env.Event {
	case protocol.EventJoinMeeting:
		err = ctl.handleJoin(ctx, c, env)
	case protocol.EventSendMessage:
		err = ctl.handleMessage(c, env)
	case protocol.EventLeaveMeeting:
		err = ctl.handleLeave(c, env)
	case protocol.EventEndMeeting:
		err = ctl.handleEnd(ctx, c, env)
	case protocol.EventPing:
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("event", string(env.Event)).Msg("unknown event")
		err = errUnknownEvent(env.Event)
	}
	if err != nil {
		log.Info().Err(err).Str("module", "signal").Str("conn", string(c.id)).Str("event", string(env.Event)).Msg("event rejected")
		ctl.sendError(c, err)
	}
}

func (ctl *SignalWSController) sendJSON(c *WsPeer, event protocol.Event, v any) {
	frame, err := protocol.Encode(event, v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(frame); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Str("event", string(event)).Msg("reply not delivered")
	}
}
