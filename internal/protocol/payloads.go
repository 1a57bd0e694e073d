package protocol

import "time"

type JoinMeeting struct {
	MeetingID   string `json:"meetingId" validate:"required,max=64"`
	UserID      string `json:"userId,omitempty" validate:"omitempty,max=64"`
	DisplayName string `json:"displayName,omitempty" validate:"omitempty,max=64"`
}

type SendMessage struct {
	MeetingID   string `json:"meetingId" validate:"required,max=64"`
	Text        string `json:"text" validate:"required"`
	AuthorLabel string `json:"authorLabel" validate:"max=64"`
}

type LeaveMeeting struct {
	MeetingID string `json:"meetingId" validate:"required,max=64"`
}

type EndMeeting struct {
	MeetingID string `json:"meetingId" validate:"required,max=64"`
}

type Joined struct {
	MeetingID string `json:"meetingId"`
}

type ParticipantInfo struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type ParticipantsList struct {
	MeetingID    string            `json:"meetingId"`
	Participants []ParticipantInfo `json:"participants"`
}

type UserJoined = ParticipantInfo

type UserLeft struct {
	UserID string `json:"userId"`
}

type ReceiveMessage struct {
	AuthorLabel string    `json:"authorLabel"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}

type Left struct {
	MeetingID string `json:"meetingId"`
}

type MeetingEnded struct {
	MeetingID string `json:"meetingId"`
}
