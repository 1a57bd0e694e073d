package signal

import (
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/dkeye/MeetChat/internal/protocol"
)

func (ctl *SignalWSController) handleMessage(c *WsPeer, env protocol.Envelope) error {
	p, err := protocol.Bind[protocol.SendMessage](env)
	if err != nil {
		return err
	}
	return ctl.Orch.Message(c, domain.MeetingID(p.MeetingID), p.Text, p.AuthorLabel)
}
