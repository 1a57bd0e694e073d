package orch

import (
	"fmt"

	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/dkeye/MeetChat/internal/protocol"
)

// Message relays chat text to everyone in the meeting but the sender.
// Nothing is stored and nothing is acknowledged.
func (o *Orchestrator) Message(peer core.Peer, meetingID domain.MeetingID, text, authorLabel string) error {
	if limit := o.Options.MaxMessageLen; limit > 0 && len(text) > limit {
		return fmt.Errorf("%w: message longer than %d bytes", domain.ErrInvalidPayload, limit)
	}
	sender, joined := o.Registry.Lookup(peer.ID())
	joined = joined && sender.MeetingID == meetingID
	if o.Options.RequireMembership && !joined {
		return domain.ErrNotParticipant
	}
	if authorLabel == "" && joined {
		authorLabel = sender.DisplayName
	}

	o.emit(meetingID, peer.ID(), protocol.EventReceiveMessage, protocol.ReceiveMessage{
		AuthorLabel: authorLabel,
		Text:        text,
		Timestamp:   o.now().UTC(),
	})
	return nil
}
