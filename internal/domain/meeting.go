package domain

import "time"

type (
	MeetingID     string
	MeetingStatus string
)

const (
	MeetingActive MeetingStatus = "active"
	MeetingEnded  MeetingStatus = "ended"
)

func (s MeetingStatus) Valid() bool {
	return s == MeetingActive || s == MeetingEnded
}

// Meeting is the durable record kept by the meeting store.
// Chat content is never part of it.
type Meeting struct {
	ID        MeetingID     `json:"id"`
	CreatorID UserID        `json:"creatorId"`
	Status    MeetingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (m Meeting) IsActive() bool { return m.Status == MeetingActive }
