package core

import "github.com/dkeye/MeetChat/internal/domain"

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []Peer
}

// Group is the transport-level broadcast group of one meeting.
// It owns the peer set but never touches transport resources.
type Group interface {
	MeetingID() domain.MeetingID
	Len() int
	Peers() []Peer

	Add(p Peer)
	Remove(id domain.ConnID) bool
	// Broadcast fans out to every peer except from. An empty from reaches everyone.
	Broadcast(from domain.ConnID, data Frame) PublishResult
}

type GroupInfo struct {
	MeetingID domain.MeetingID `json:"meetingId"`
	PeerCount int              `json:"peerCount"`
}

// GroupManager keeps one Group per meeting. Empty groups are dropped on Detach.
type GroupManager interface {
	Attach(meetingID domain.MeetingID, p Peer)
	Detach(meetingID domain.MeetingID, id domain.ConnID) bool
	Broadcast(meetingID domain.MeetingID, from domain.ConnID, data Frame) PublishResult
	Dissolve(meetingID domain.MeetingID) []Peer
	List() []GroupInfo
}
