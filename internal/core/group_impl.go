package core

import (
	"sync"

	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/rs/zerolog/log"
)

// groupImpl is a threadsafe in-memory broadcast group.
// It never closes adapter-owned resources.
type groupImpl struct {
	meetingID domain.MeetingID
	mu        sync.RWMutex
	peers     map[domain.ConnID]Peer
}

func NewGroup(meetingID domain.MeetingID) Group {
	return &groupImpl{
		meetingID: meetingID,
		peers:     make(map[domain.ConnID]Peer),
	}
}

func (g *groupImpl) MeetingID() domain.MeetingID { return g.meetingID }

func (g *groupImpl) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.peers)
}

func (g *groupImpl) Add(p Peer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.peers[p.ID()] = p
	log.Debug().Str("module", "core.group").Str("meeting", string(g.meetingID)).Str("conn", string(p.ID())).Msg("peer attached")
}

func (g *groupImpl) Remove(id domain.ConnID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.peers[id]; !ok {
		return false
	}
	delete(g.peers, id)
	log.Debug().Str("module", "core.group").Str("meeting", string(g.meetingID)).Str("conn", string(id)).Msg("peer detached")
	return true
}

func (g *groupImpl) Peers() []Peer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Peer, 0, len(g.peers))
	for _, p := range g.peers {
		out = append(out, p)
	}
	return out
}

func (g *groupImpl) Broadcast(from domain.ConnID, data Frame) PublishResult {
	g.mu.RLock()
	defer g.mu.RUnlock()
	res := PublishResult{}
	for id, p := range g.peers {
		if from != "" && id == from {
			continue
		}
		if err := p.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, p)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.group").Str("meeting", string(g.meetingID)).Str("from", string(from)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}
