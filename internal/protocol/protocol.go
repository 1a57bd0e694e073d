// Package protocol defines the real-time wire events. Every frame is an
// envelope {"event": name, "data": payload}; inbound payloads are validated
// here before anything reaches the coordinator.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/go-playground/validator/v10"
)

type Event string

// client -> server
const (
	EventJoinMeeting  Event = "join-meeting"
	EventSendMessage  Event = "send-message"
	EventLeaveMeeting Event = "leave-meeting"
	EventEndMeeting   Event = "end-meeting"
	EventPing         Event = "ping"
)

// server -> client
const (
	EventJoined           Event = "joined"
	EventParticipantsList Event = "participants-list"
	EventUserJoined       Event = "user-joined"
	EventReceiveMessage   Event = "receive-message"
	EventUserLeft         Event = "user-left"
	EventLeft             Event = "left"
	EventMeetingEnded     Event = "meeting-ended"
	EventError            Event = "error"
	EventPong             Event = "pong"
)

type Envelope struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

var validate = validator.New()

// Decode reads the envelope only; the payload is bound later per event.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("%w: missing event", domain.ErrInvalidPayload)
	}
	return env, nil
}

// Bind unmarshals and validates the payload of env into T.
func Bind[T any](env Envelope) (T, error) {
	var v T
	if len(env.Data) == 0 {
		return v, fmt.Errorf("%w: %s has no data", domain.ErrInvalidPayload, env.Event)
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if err := validate.Struct(v); err != nil {
		return v, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return v, nil
}

// Encode builds a wire frame for an outbound event.
func Encode(event Event, data any) (core.Frame, error) {
	env := struct {
		Event Event `json:"event"`
		Data  any   `json:"data,omitempty"`
	}{event, data}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event, err)
	}
	return b, nil
}
