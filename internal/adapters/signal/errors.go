package signal

import (
	"errors"
	"fmt"

	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/dkeye/MeetChat/internal/protocol"
)

// publicErrors are safe to show verbatim to the caller.
var publicErrors = []error{
	domain.ErrUnauthenticated,
	domain.ErrMeetingNotFound,
	domain.ErrMeetingInactive,
	domain.ErrNotParticipant,
	domain.ErrNotCreator,
	domain.ErrStoreUnavailable,
}

func errUnknownEvent(e protocol.Event) error {
	return fmt.Errorf("%w: unknown event %q", domain.ErrInvalidPayload, e)
}

// reason turns an error into the text of an error event. Store details stay in the logs.
func reason(err error) string {
	if errors.Is(err, domain.ErrInvalidPayload) {
		return err.Error()
	}
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal error"
}

func (ctl *SignalWSController) sendError(c *WsPeer, err error) {
	ctl.sendJSON(c, protocol.EventError, reason(err))
}
