package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// meetingRow is the meetings table.
type meetingRow struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	CreatorID string    `gorm:"type:varchar(64);not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (meetingRow) TableName() string {
	return "meetings"
}

type PostgresStore struct {
	db *gorm.DB
}

func OpenPostgres(dsn string) (*PostgresStore, error) {
	zl := log.With().Str("module", "store.postgres").Logger()
	gormLogger := logger.New(&zl, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(&meetingRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate meetings: %w", err)
	}
	zl.Info().Msg("connected")
	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, creatorID domain.UserID) (domain.Meeting, error) {
	row := meetingRow{
		ID:        uuid.NewString(),
		CreatorID: string(creatorID),
		Status:    string(domain.MeetingActive),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Meeting{}, fmt.Errorf("create meeting: %w", err)
	}
	return row.toMeeting(), nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id domain.MeetingID) (domain.Meeting, error) {
	var row meetingRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", string(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Meeting{}, domain.ErrMeetingNotFound
	}
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("get meeting: %w", err)
	}
	return row.toMeeting(), nil
}

// UpdateStatus relies on postgres counting matched rows, so re-setting the
// same status still reports one affected row.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id domain.MeetingID, status domain.MeetingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	res := s.db.WithContext(ctx).Model(&meetingRow{}).Where("id = ?", string(id)).Update("status", string(status))
	if res.Error != nil {
		return fmt.Errorf("update meeting status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrMeetingNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r meetingRow) toMeeting() domain.Meeting {
	return domain.Meeting{
		ID:        domain.MeetingID(r.ID),
		CreatorID: domain.UserID(r.CreatorID),
		Status:    domain.MeetingStatus(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
	}
}
