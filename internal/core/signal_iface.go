package core

import "github.com/dkeye/MeetChat/internal/domain"

// Frame is an encoded protocol event ready for the wire.
type Frame []byte

// Peer abstracts one live connection of the messaging transport.
// Owned by the adapter; the adapter must Close() it.
type Peer interface {
	ID() domain.ConnID
	// TrySend enqueues without blocking and fails when the peer is slow or closed.
	TrySend(Frame) error
	Close()
}
