package app

import (
	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

type Policy interface {
	OnBackPressure(meetingID domain.MeetingID, peer core.Peer) BackpressureAction
}

// SimplePolicy closes any peer that cannot keep up.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.MeetingID, core.Peer) BackpressureAction {
	return KickMember
}

// DropPolicy keeps slow peers and loses the frame for them.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.MeetingID, core.Peer) BackpressureAction {
	return DropFrame
}

func PolicyByName(name string) Policy {
	if name == "drop" {
		return DropPolicy{}
	}
	return SimplePolicy{}
}
