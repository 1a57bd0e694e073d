package domain

// ConnID identifies one live connection. A reconnect always gets a new one.
type ConnID string

// Participant is one live connection's membership in a meeting room.
// It is never persisted and never updated in place.
type Participant struct {
	ConnID      ConnID
	UserID      UserID
	DisplayName string
	MeetingID   MeetingID
}

func NewParticipant(connID ConnID, id Identity, meetingID MeetingID) Participant {
	return Participant{
		ConnID:      connID,
		UserID:      id.UserID,
		DisplayName: id.DisplayName,
		MeetingID:   meetingID,
	}
}

func (p Participant) Identity() Identity {
	return Identity{UserID: p.UserID, DisplayName: p.DisplayName}
}
