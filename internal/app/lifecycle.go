package app

import (
	"context"
	"sync"
	"time"

	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/rs/zerolog/log"
)

// Lifecycle ends a meeting in the store once its room has emptied.
// The update is detached: it is never retried and never fails the caller.
type Lifecycle struct {
	store   core.MeetingStore
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewLifecycle(store core.MeetingStore, timeout time.Duration) *Lifecycle {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Lifecycle{store: store, timeout: timeout}
}

// RoomEmptied issues exactly one status update for the emptiness event it is called for.
func (l *Lifecycle) RoomEmptied(meetingID domain.MeetingID) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		logger := log.With().Str("module", "app.lifecycle").Str("meeting", string(meetingID)).Logger()
		if err := l.store.UpdateStatus(ctx, meetingID, domain.MeetingEnded); err != nil {
			logger.Error().Err(err).Msg("failed to end empty meeting")
			return
		}
		logger.Info().Msg("meeting ended after last participant left")
	}()
}

// Wait blocks until every pending status update has finished.
func (l *Lifecycle) Wait() {
	l.wg.Wait()
}
