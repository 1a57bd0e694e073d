package signal

import (
	"context"
	"fmt"

	"github.com/dkeye/MeetChat/internal/config"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/dkeye/MeetChat/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(ctx context.Context, c *WsPeer, env protocol.Envelope) error {
	p, err := protocol.Bind[protocol.JoinMeeting](env)
	if err != nil {
		return err
	}
	id, err := ctl.joinIdentity(c, p)
	if err != nil {
		return err
	}
	log.Info().Str("module", "signal").Str("conn", string(c.id)).Str("meeting", p.MeetingID).Msg("join")
	return ctl.Orch.Join(ctx, c, domain.MeetingID(p.MeetingID), id)
}

// joinIdentity picks the identity source for the configured auth mode.
func (ctl *SignalWSController) joinIdentity(c *WsPeer, p protocol.JoinMeeting) (domain.Identity, error) {
	if ctl.settings.AuthMode == config.AuthModeToken {
		if c.identity.IsZero() {
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		return c.identity, nil
	}
	id, err := domain.NewIdentity(p.UserID, p.DisplayName)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	return id, nil
}

// handleLeave leaves the meeting; the connection itself stays open.
func (ctl *SignalWSController) handleLeave(c *WsPeer, env protocol.Envelope) error {
	p, err := protocol.Bind[protocol.LeaveMeeting](env)
	if err != nil {
		return err
	}
	log.Info().Str("module", "signal").Str("conn", string(c.id)).Str("meeting", p.MeetingID).Msg("leave")
	return ctl.Orch.Leave(c, domain.MeetingID(p.MeetingID))
}

func (ctl *SignalWSController) handleEnd(ctx context.Context, c *WsPeer, env protocol.Envelope) error {
	p, err := protocol.Bind[protocol.EndMeeting](env)
	if err != nil {
		return err
	}
	// the upgrade identity (token or session guest), never the one claimed at join
	requester := c.identity.UserID
	log.Info().Str("module", "signal").Str("conn", string(c.id)).Str("meeting", p.MeetingID).Str("user", string(requester)).Msg("end meeting")
	_, err = ctl.Orch.EndMeeting(ctx, requester, domain.MeetingID(p.MeetingID))
	return err
}
