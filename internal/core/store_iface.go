//go:generate go run go.uber.org/mock/mockgen -source=store_iface.go -destination=../mocks/mock_meeting_store.go -package=mocks
package core

import (
	"context"

	"github.com/dkeye/MeetChat/internal/domain"
)

// MeetingStore is the authoritative record of meeting existence and status.
// Implementations return domain.ErrMeetingNotFound for unknown ids.
type MeetingStore interface {
	Create(ctx context.Context, creatorID domain.UserID) (domain.Meeting, error)
	GetByID(ctx context.Context, id domain.MeetingID) (domain.Meeting, error)
	// UpdateStatus is idempotent: setting the current status again is a no-op.
	UpdateStatus(ctx context.Context, id domain.MeetingID, status domain.MeetingStatus) error
	Close() error
}
