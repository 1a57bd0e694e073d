package signal

import "github.com/dkeye/MeetChat/internal/protocol"

func (ctl *SignalWSController) handlePing(c *WsPeer) {
	ctl.sendJSON(c, protocol.EventPong, nil)
}
