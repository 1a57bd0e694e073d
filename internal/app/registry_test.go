package app

import (
	"sync"
	"testing"

	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/stretchr/testify/require"
)

func participant(conn, user, meeting string) domain.Participant {
	return domain.Participant{
		ConnID:      domain.ConnID(conn),
		UserID:      domain.UserID(user),
		DisplayName: user,
		MeetingID:   domain.MeetingID(meeting),
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should report the first connection of each user", func(t *testing.T) {
		req := require.New(t)
		r := NewRegistry()

		req.True(r.Register(participant("c1", "u1", "m1")))
		req.True(r.Register(participant("c2", "u2", "m1")))
		req.False(r.Register(participant("c3", "u1", "m1")))
		// same user in another meeting is a first again
		req.True(r.Register(participant("c4", "u1", "m2")))
		req.Equal(4, r.Len())
	})

	t.Run("should treat re-registering the same connection as a duplicate", func(t *testing.T) {
		req := require.New(t)
		r := NewRegistry()

		req.True(r.Register(participant("c1", "u1", "m1")))
		req.False(r.Register(participant("c1", "u1", "m1")))
		req.Equal(1, r.Len())
	})

	t.Run("should let exactly one concurrent register win", func(t *testing.T) {
		req := require.New(t)
		r := NewRegistry()

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			first int
		)
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				conn := "c" + string(rune('A'+i))
				if r.Register(participant(conn, "u1", "m1")) {
					mu.Lock()
					first++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		req.Equal(1, first)
		req.Equal(50, r.Len())
	})
}

func TestRegistry_Unregister(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()
	r.Register(participant("c1", "u1", "m1"))
	r.Register(participant("c2", "u1", "m1"))
	r.Register(participant("c3", "u2", "m1"))

	// When one of two connections of u1 goes
	rm, ok := r.Unregister("c1")
	req.True(ok)
	req.False(rm.LastForUser)
	req.False(rm.RoomEmpty)
	req.Equal(domain.UserID("u1"), rm.Participant.UserID)

	// When the last connection of u1 goes
	rm, ok = r.Unregister("c2")
	req.True(ok)
	req.True(rm.LastForUser)
	req.False(rm.RoomEmpty)

	// When the last connection of the room goes
	rm, ok = r.Unregister("c3")
	req.True(ok)
	req.True(rm.LastForUser)
	req.True(rm.RoomEmpty)

	// Then a second removal finds nothing
	_, ok = r.Unregister("c3")
	req.False(ok)
	req.Zero(r.Len())
}

func TestRegistry_ConcurrentLastLeaveReportsEmptyOnce(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()
	for i := range 20 {
		r.Register(participant("c"+string(rune('a'+i)), "u"+string(rune('a'+i)), "m1"))
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		empty int
	)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rm, ok := r.Unregister(domain.ConnID("c" + string(rune('a'+i))))
			if ok && rm.RoomEmpty {
				mu.Lock()
				empty++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	req.Equal(1, empty)
}

func TestRegistry_ListAndClear(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()
	r.Register(participant("c1", "u1", "m1"))
	r.Register(participant("c2", "u2", "m1"))
	r.Register(participant("c3", "u3", "m2"))

	req.Len(r.ListByMeeting("m1"), 2)
	req.Len(r.ListByMeeting("m2"), 1)
	req.Empty(r.ListByMeeting("m3"))

	cleared := r.ClearMeeting("m1")
	req.Len(cleared, 2)
	req.Empty(r.ListByMeeting("m1"))
	_, ok := r.Lookup("c3")
	req.True(ok)
}

func TestRegistry_Replace(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()
	r.Register(participant("c1", "u1", "m1"))
	r.Register(participant("c2", "u2", "m1"))

	// When c1 switches from u1 to the already present u2
	sw := r.Replace(participant("c1", "u2", "m1"))

	req.Equal(domain.UserID("u1"), sw.Previous.UserID)
	req.True(sw.LastForPrevious)
	req.False(sw.FirstForNew)
	req.Equal(2, r.Len())

	// When c1 switches again to a fresh user
	sw = r.Replace(participant("c1", "u3", "m1"))
	req.False(sw.LastForPrevious)
	req.True(sw.FirstForNew)

	p, ok := r.Lookup("c1")
	req.True(ok)
	req.Equal(domain.UserID("u3"), p.UserID)
}
