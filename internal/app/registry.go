package app

import (
	"sync"

	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Registry is the connection registry: the only record of who is present
// where. Every mutation goes through the coordinator.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]domain.Participant
}

// Removal describes what a single unregister did to its room.
// LastForUser and RoomEmpty are computed in the same critical section as the removal.
type Removal struct {
	Participant domain.Participant
	LastForUser bool
	RoomEmpty   bool
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]domain.Participant)}
}

// Register inserts or overwrites the entry for p.ConnID and reports whether
// no other connection of the same user was already in the meeting.
func (r *Registry) Register(p domain.Participant) (firstForUser bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// includes a prior entry of this very connection in the same room
	firstForUser = true
	for _, other := range r.conns {
		if other.MeetingID == p.MeetingID && other.UserID == p.UserID {
			firstForUser = false
			break
		}
	}
	r.conns[p.ConnID] = p
	log.Info().Str("module", "app.registry").Str("conn", string(p.ConnID)).Str("user", string(p.UserID)).Str("meeting", string(p.MeetingID)).Bool("first_for_user", firstForUser).Msg("registered")
	return firstForUser
}

// Unregister removes and returns the entry for id, if any.
func (r *Registry) Unregister(id domain.ConnID) (Removal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.conns[id]
	if !ok {
		return Removal{}, false
	}
	delete(r.conns, id)

	rm := Removal{Participant: p, LastForUser: true, RoomEmpty: true}
	for _, other := range r.conns {
		if other.MeetingID != p.MeetingID {
			continue
		}
		rm.RoomEmpty = false
		if other.UserID == p.UserID {
			rm.LastForUser = false
			break
		}
	}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("meeting", string(p.MeetingID)).Bool("room_empty", rm.RoomEmpty).Msg("unregistered")
	return rm, true
}

// Swap describes an identity change of a connection that stays in its meeting.
type Swap struct {
	Previous        domain.Participant
	LastForPrevious bool
	FirstForNew     bool
}

// Replace overwrites the entry of p.ConnID in one critical section, so the
// room is never observed empty in between.
func (r *Registry) Replace(p domain.Participant) Swap {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, had := r.conns[p.ConnID]
	delete(r.conns, p.ConnID)
	sw := Swap{Previous: prev, LastForPrevious: had, FirstForNew: true}
	for _, other := range r.conns {
		if other.MeetingID != p.MeetingID {
			continue
		}
		if had && other.UserID == prev.UserID {
			sw.LastForPrevious = false
		}
		if other.UserID == p.UserID {
			sw.FirstForNew = false
		}
	}
	r.conns[p.ConnID] = p
	log.Info().Str("module", "app.registry").Str("conn", string(p.ConnID)).Str("from_user", string(prev.UserID)).Str("user", string(p.UserID)).Msg("replaced")
	return sw
}

func (r *Registry) Lookup(id domain.ConnID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.conns[id]
	return p, ok
}

// ListByMeeting returns the participants of a meeting in no particular order.
func (r *Registry) ListByMeeting(meetingID domain.MeetingID) []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Filter(lo.Values(r.conns), func(p domain.Participant, _ int) bool {
		return p.MeetingID == meetingID
	})
}

// ClearMeeting drops every entry of a meeting at once and returns them.
func (r *Registry) ClearMeeting(meetingID domain.MeetingID) []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Participant
	for id, p := range r.conns {
		if p.MeetingID == meetingID {
			out = append(out, p)
			delete(r.conns, id)
		}
	}
	log.Info().Str("module", "app.registry").Str("meeting", string(meetingID)).Int("cleared", len(out)).Msg("cleared meeting")
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
