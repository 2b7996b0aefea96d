package registry

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/config"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
)

// PostgresStore mirrors reminder metadata into a reminder_records table.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to postgres and migrates the reminder table.
func NewPostgresStore(cfg config.Store) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.ReminderInfo{}); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Save(ctx context.Context, info models.ReminderInfo) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&info).Error
}

func (s *PostgresStore) Delete(ctx context.Context, bookingID string) error {
	return s.db.WithContext(ctx).
		Delete(&models.ReminderInfo{}, "booking_id = ?", bookingID).Error
}

func (s *PostgresStore) Load(ctx context.Context) ([]models.ReminderInfo, error) {
	var records []models.ReminderInfo
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
