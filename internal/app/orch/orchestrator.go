package orch

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/dkeye/MeetChat/internal/app"
	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/dkeye/MeetChat/internal/protocol"
	"github.com/rs/zerolog/log"
)

type Options struct {
	// JoinTimeout bounds each meeting lookup (join and end-meeting).
	JoinTimeout time.Duration
	// RequireMembership rejects messages from connections not joined to the target meeting.
	RequireMembership bool
	MaxMessageLen     int
}

// Orchestrator is the room coordinator. It is the only writer of the
// registry and the broadcast groups.
type Orchestrator struct {
	Registry  *app.Registry
	Groups    core.GroupManager
	Store     core.MeetingStore
	Lifecycle *app.Lifecycle
	Policy    app.Policy
	Options   Options

	// Now stamps relayed messages; defaults to time.Now.
	Now func() time.Time

	// gates serialize EndMeeting against joins of the same meeting.
	// Joins share a read lock, ending takes the write lock.
	gates [meetingGates]sync.RWMutex
}

const meetingGates = 64

func New(store core.MeetingStore, lifecycle *app.Lifecycle, policy app.Policy, opts Options) *Orchestrator {
	return &Orchestrator{
		Registry:  app.NewRegistry(),
		Groups:    app.NewGroupManager(),
		Store:     store,
		Lifecycle: lifecycle,
		Policy:    policy,
		Options:   opts,
		Now:       time.Now,
	}
}

func (o *Orchestrator) gate(meetingID domain.MeetingID) *sync.RWMutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(meetingID))
	return &o.gates[h.Sum32()%meetingGates]
}

func (o *Orchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// publish fans a frame out to a meeting's group and applies the back-pressure policy.
func (o *Orchestrator) publish(meetingID domain.MeetingID, from domain.ConnID, data core.Frame) {
	res := o.Groups.Broadcast(meetingID, from, data)
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(meetingID, slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("meeting", string(meetingID)).Str("conn", string(slow.ID())).Msg("kicking slow peer")
			// closing ends the peer's read loop, which reports the disconnect
			slow.Close()
		case app.DropFrame, app.NoAction:
			log.Debug().Str("module", "orch").Str("meeting", string(meetingID)).Str("conn", string(slow.ID())).Msg("frame dropped for slow peer")
		}
	}
}

func (o *Orchestrator) emit(meetingID domain.MeetingID, from domain.ConnID, event protocol.Event, data any) {
	frame, err := protocol.Encode(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode broadcast")
		return
	}
	o.publish(meetingID, from, frame)
}

// send delivers one event to a single peer. Delivery is best-effort.
func send(peer core.Peer, event protocol.Event, data any) {
	frame, err := protocol.Encode(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode reply")
		return
	}
	if err := peer.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("conn", string(peer.ID())).Str("event", string(event)).Msg("reply not delivered")
	}
}
