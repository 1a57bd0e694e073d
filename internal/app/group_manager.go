package app

import (
	"sync"

	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
)

type GroupManagerImpl struct {
	mu     sync.RWMutex
	groups map[domain.MeetingID]core.Group
}

func NewGroupManager() core.GroupManager {
	return &GroupManagerImpl{groups: make(map[domain.MeetingID]core.Group)}
}

// Attach creates the group on first use. Creation and insertion share the
// manager lock so a concurrent Detach cannot drop a group being joined.
func (f *GroupManagerImpl) Attach(meetingID domain.MeetingID, p core.Peer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[meetingID]
	if !ok {
		g = core.NewGroup(meetingID)
		f.groups[meetingID] = g
	}
	g.Add(p)
}

func (f *GroupManagerImpl) Detach(meetingID domain.MeetingID, id domain.ConnID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[meetingID]
	if !ok {
		return false
	}
	removed := g.Remove(id)
	if g.Len() == 0 {
		delete(f.groups, meetingID)
	}
	return removed
}

func (f *GroupManagerImpl) Broadcast(meetingID domain.MeetingID, from domain.ConnID, data core.Frame) core.PublishResult {
	f.mu.RLock()
	g, ok := f.groups[meetingID]
	f.mu.RUnlock()
	if !ok {
		return core.PublishResult{}
	}
	return g.Broadcast(from, data)
}

func (f *GroupManagerImpl) Dissolve(meetingID domain.MeetingID) []core.Peer {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[meetingID]
	if !ok {
		return nil
	}
	delete(f.groups, meetingID)
	return g.Peers()
}

func (f *GroupManagerImpl) List() []core.GroupInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.GroupInfo, 0, len(f.groups))
	for id, g := range f.groups {
		out = append(out, core.GroupInfo{MeetingID: id, PeerCount: g.Len()})
	}
	return out
}
