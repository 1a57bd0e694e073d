package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/google/uuid"
)

type MemoryStore struct {
	mu       sync.RWMutex
	meetings map[domain.MeetingID]domain.Meeting
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{meetings: make(map[domain.MeetingID]domain.Meeting)}
}

func (s *MemoryStore) Create(_ context.Context, creatorID domain.UserID) (domain.Meeting, error) {
	m := domain.Meeting{
		ID:        domain.MeetingID(uuid.NewString()),
		CreatorID: creatorID,
		Status:    domain.MeetingActive,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.meetings[m.ID] = m
	s.mu.Unlock()
	return m, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id domain.MeetingID) (domain.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[id]
	if !ok {
		return domain.Meeting{}, domain.ErrMeetingNotFound
	}
	return m, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id domain.MeetingID, status domain.MeetingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meetings[id]
	if !ok {
		return domain.ErrMeetingNotFound
	}
	m.Status = status
	s.meetings[id] = m
	return nil
}

func (s *MemoryStore) Close() error { return nil }
