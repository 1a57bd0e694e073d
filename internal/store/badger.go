package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const meetingKeyPrefix = "meeting:"

// meetingRecord is the on-disk shape of a meeting.
type meetingRecord struct {
	ID        string `cbor:"id"`
	CreatorID string `cbor:"creator_id"`
	Status    string `cbor:"status"`
	CreatedAt int64  `cbor:"created_at"` // unix nanoseconds
}

type BadgerStore struct {
	db *badger.DB
}

func OpenBadger(path string) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	log.Info().Str("module", "store.badger").Str("path", path).Msg("opened")
	return NewBadgerStore(db), nil
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func meetingKey(id domain.MeetingID) []byte {
	return []byte(meetingKeyPrefix + string(id))
}

func (s *BadgerStore) Create(_ context.Context, creatorID domain.UserID) (domain.Meeting, error) {
	m := domain.Meeting{
		ID:        domain.MeetingID(uuid.NewString()),
		CreatorID: creatorID,
		Status:    domain.MeetingActive,
		CreatedAt: time.Now().UTC(),
	}
	data, err := cbor.Marshal(toRecord(m))
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("marshal meeting: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(meetingKey(m.ID), data)
	})
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("store meeting: %w", err)
	}
	return m, nil
}

func (s *BadgerStore) GetByID(_ context.Context, id domain.MeetingID) (domain.Meeting, error) {
	var rec meetingRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return readRecord(txn, id, &rec)
	})
	if err != nil {
		return domain.Meeting{}, err
	}
	return rec.toMeeting(), nil
}

func (s *BadgerStore) UpdateStatus(_ context.Context, id domain.MeetingID, status domain.MeetingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var rec meetingRecord
		if err := readRecord(txn, id, &rec); err != nil {
			return err
		}
		if rec.Status == string(status) {
			return nil
		}
		rec.Status = string(status)
		data, err := cbor.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal meeting: %w", err)
		}
		return txn.Set(meetingKey(id), data)
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func readRecord(txn *badger.Txn, id domain.MeetingID, rec *meetingRecord) error {
	item, err := txn.Get(meetingKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.ErrMeetingNotFound
	}
	if err != nil {
		return fmt.Errorf("get meeting: %w", err)
	}
	return item.Value(func(val []byte) error {
		return cbor.Unmarshal(val, rec)
	})
}

func toRecord(m domain.Meeting) meetingRecord {
	return meetingRecord{
		ID:        string(m.ID),
		CreatorID: string(m.CreatorID),
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.UnixNano(),
	}
}

func (r meetingRecord) toMeeting() domain.Meeting {
	return domain.Meeting{
		ID:        domain.MeetingID(r.ID),
		CreatorID: domain.UserID(r.CreatorID),
		Status:    domain.MeetingStatus(r.Status),
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}
}
