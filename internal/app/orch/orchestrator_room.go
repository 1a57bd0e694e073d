package orch

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/dkeye/MeetChat/internal/protocol"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Join runs the join protocol for peer. On error nothing has been registered
// or broadcast, and the caller is expected to report the error to the peer.
func (o *Orchestrator) Join(ctx context.Context, peer core.Peer, meetingID domain.MeetingID, id domain.Identity) error {
	if id.IsZero() {
		return domain.ErrUnauthenticated
	}
	gate := o.gate(meetingID)
	gate.RLock()
	defer gate.RUnlock()

	if _, err := o.activeMeeting(ctx, meetingID); err != nil {
		return err
	}

	if current, ok := o.Registry.Lookup(peer.ID()); ok {
		if current.MeetingID == meetingID {
			if current.UserID != id.UserID {
				o.swapIdentity(peer, id, meetingID)
			}
			o.sendRoomState(peer, meetingID)
			return nil
		}
		log.Info().Str("module", "orch").Str("conn", string(peer.ID())).Str("from_meeting", string(current.MeetingID)).Msg("leaving previous meeting")
		o.depart(peer.ID())
	}

	p := domain.NewParticipant(peer.ID(), id, meetingID)
	if first := o.Registry.Register(p); first {
		// the joiner is not attached yet, so this reaches the others only
		o.emit(meetingID, peer.ID(), protocol.EventUserJoined, toInfo(p))
	}
	o.Groups.Attach(meetingID, peer)
	log.Info().Str("module", "orch").Str("conn", string(peer.ID())).Str("user", string(id.UserID)).Str("meeting", string(meetingID)).Msg("joined")

	o.sendRoomState(peer, meetingID)
	return nil
}

// Leave runs the explicit leave protocol for the meeting the peer is in.
func (o *Orchestrator) Leave(peer core.Peer, meetingID domain.MeetingID) error {
	current, ok := o.Registry.Lookup(peer.ID())
	if !ok || current.MeetingID != meetingID {
		return domain.ErrNotParticipant
	}
	o.depart(peer.ID())
	send(peer, protocol.EventLeft, protocol.Left{MeetingID: string(meetingID)})
	return nil
}

// Disconnect runs the leave protocol for a connection the transport lost.
// Unknown or never-joined connections are ignored.
func (o *Orchestrator) Disconnect(connID domain.ConnID) {
	if o.depart(connID) {
		log.Info().Str("module", "orch").Str("conn", string(connID)).Msg("disconnected participant removed")
	}
}

// EndMeeting marks the meeting ended, notifies every member and clears the room.
func (o *Orchestrator) EndMeeting(ctx context.Context, requester domain.UserID, meetingID domain.MeetingID) (domain.Meeting, error) {
	if requester == "" {
		return domain.Meeting{}, domain.ErrUnauthenticated
	}
	gate := o.gate(meetingID)
	gate.Lock()
	defer gate.Unlock()

	m, err := o.lookupMeeting(ctx, meetingID)
	if err != nil {
		return domain.Meeting{}, err
	}
	if m.CreatorID != requester {
		return domain.Meeting{}, domain.ErrNotCreator
	}
	if m.IsActive() {
		if err := o.Store.UpdateStatus(ctx, meetingID, domain.MeetingEnded); err != nil {
			return domain.Meeting{}, storeError(err)
		}
		m.Status = domain.MeetingEnded
	}

	o.emit(meetingID, "", protocol.EventMeetingEnded, protocol.MeetingEnded{MeetingID: string(meetingID)})
	cleared := o.Registry.ClearMeeting(meetingID)
	o.Groups.Dissolve(meetingID)
	log.Info().Str("module", "orch").Str("meeting", string(meetingID)).Int("cleared", len(cleared)).Msg("meeting ended")
	return m, nil
}

// Participants is the current room view, one entry per user.
func (o *Orchestrator) Participants(meetingID domain.MeetingID) []protocol.ParticipantInfo {
	list := lo.UniqBy(o.Registry.ListByMeeting(meetingID), func(p domain.Participant) domain.UserID {
		return p.UserID
	})
	return lo.Map(list, func(p domain.Participant, _ int) protocol.ParticipantInfo {
		return toInfo(p)
	})
}

// depart removes the connection and runs presence and lifecycle side effects.
// Emptiness comes from the same registry removal, never from a later read.
func (o *Orchestrator) depart(connID domain.ConnID) bool {
	rm, ok := o.Registry.Unregister(connID)
	if !ok {
		return false
	}
	meetingID := rm.Participant.MeetingID
	o.Groups.Detach(meetingID, connID)

	if rm.LastForUser {
		o.emit(meetingID, connID, protocol.EventUserLeft, protocol.UserLeft{UserID: string(rm.Participant.UserID)})
	}
	if rm.RoomEmpty && o.Lifecycle != nil {
		o.Lifecycle.RoomEmptied(meetingID)
	}
	return true
}

// swapIdentity changes who a connection is without leaving its room, so the
// room never looks empty and no lifecycle update fires.
func (o *Orchestrator) swapIdentity(peer core.Peer, id domain.Identity, meetingID domain.MeetingID) {
	p := domain.NewParticipant(peer.ID(), id, meetingID)
	sw := o.Registry.Replace(p)
	if sw.LastForPrevious {
		o.emit(meetingID, peer.ID(), protocol.EventUserLeft, protocol.UserLeft{UserID: string(sw.Previous.UserID)})
	}
	if sw.FirstForNew {
		o.emit(meetingID, peer.ID(), protocol.EventUserJoined, toInfo(p))
	}
	log.Info().Str("module", "orch").Str("conn", string(peer.ID())).Str("from_user", string(sw.Previous.UserID)).Str("user", string(id.UserID)).Msg("identity changed")
}

func (o *Orchestrator) sendRoomState(peer core.Peer, meetingID domain.MeetingID) {
	send(peer, protocol.EventParticipantsList, protocol.ParticipantsList{
		MeetingID:    string(meetingID),
		Participants: o.Participants(meetingID),
	})
	send(peer, protocol.EventJoined, protocol.Joined{MeetingID: string(meetingID)})
}

func (o *Orchestrator) activeMeeting(ctx context.Context, meetingID domain.MeetingID) (domain.Meeting, error) {
	m, err := o.lookupMeeting(ctx, meetingID)
	if err != nil {
		return domain.Meeting{}, err
	}
	if !m.IsActive() {
		return domain.Meeting{}, domain.ErrMeetingInactive
	}
	return m, nil
}

// lookupMeeting queries the store once, without retry.
func (o *Orchestrator) lookupMeeting(ctx context.Context, meetingID domain.MeetingID) (domain.Meeting, error) {
	if o.Options.JoinTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Options.JoinTimeout)
		defer cancel()
	}
	m, err := o.Store.GetByID(ctx, meetingID)
	if err != nil {
		return domain.Meeting{}, storeError(err)
	}
	return m, nil
}

func storeError(err error) error {
	if errors.Is(err, domain.ErrMeetingNotFound) {
		return domain.ErrMeetingNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func toInfo(p domain.Participant) protocol.ParticipantInfo {
	return protocol.ParticipantInfo{UserID: string(p.UserID), DisplayName: p.DisplayName}
}
