package domain

import "errors"

var (
	ErrUserIDEmpty        = errors.New("user id empty")
	ErrUserIDTooLong      = errors.New("user id too long")
	ErrDisplayNameTooLong = errors.New("display name too long")

	ErrUnauthenticated  = errors.New("missing or invalid identity")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrMeetingInactive  = errors.New("meeting is not active")
	ErrStoreUnavailable = errors.New("meeting store unavailable")
	ErrNotParticipant   = errors.New("not a participant of this meeting")
	ErrNotCreator       = errors.New("only the meeting creator may end it")
)
