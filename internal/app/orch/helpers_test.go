package orch

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/MeetChat/internal/app"
	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/dkeye/MeetChat/internal/mocks"
	"github.com/dkeye/MeetChat/internal/protocol"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type fakePeer struct {
	id domain.ConnID

	mu     sync.Mutex
	frames []core.Frame
	full   bool
	closed bool
}

func newPeer(id string) *fakePeer {
	return &fakePeer{id: domain.ConnID(id)}
}

func (p *fakePeer) ID() domain.ConnID { return p.id }

func (p *fakePeer) TrySend(f core.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.New("closed")
	}
	if p.full {
		return errors.New("full")
	}
	p.frames = append(p.frames, f)
	return nil
}

func (p *fakePeer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *fakePeer) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *fakePeer) envelopes(t *testing.T) []protocol.Envelope {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]protocol.Envelope, 0, len(p.frames))
	for _, f := range p.frames {
		env, err := protocol.Decode(f)
		require.NoError(t, err)
		out = append(out, env)
	}
	return out
}

func (p *fakePeer) events(t *testing.T) []protocol.Event {
	t.Helper()
	var out []protocol.Event
	for _, env := range p.envelopes(t) {
		out = append(out, env.Event)
	}
	return out
}

// payloads decodes the data of every frame carrying event into T.
func payloads[T any](t *testing.T, p *fakePeer, event protocol.Event) []T {
	t.Helper()
	var out []T
	for _, env := range p.envelopes(t) {
		if env.Event != event {
			continue
		}
		var v T
		require.NoError(t, json.Unmarshal(env.Data, &v))
		out = append(out, v)
	}
	return out
}

func (p *fakePeer) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = nil
}

func identity(user string) domain.Identity {
	return domain.Identity{UserID: domain.UserID(user), DisplayName: "name-" + user}
}

func activeMeeting(id, creator string) domain.Meeting {
	return domain.Meeting{ID: domain.MeetingID(id), CreatorID: domain.UserID(creator), Status: domain.MeetingActive, CreatedAt: fixedNow}
}

func newTestOrchestrator(store *mocks.MockMeetingStore) (*Orchestrator, *app.Lifecycle) {
	lc := app.NewLifecycle(store, time.Second)
	o := New(store, lc, app.SimplePolicy{}, Options{
		JoinTimeout:       time.Second,
		RequireMembership: true,
		MaxMessageLen:     100,
	})
	o.Now = func() time.Time { return fixedNow }
	return o, lc
}

func userIDs(list []protocol.ParticipantInfo) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.UserID)
	}
	return out
}
