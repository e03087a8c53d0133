package repo

import (
	"ShareAMeal/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlot хранит слоты в таблице kv_slots через gorm.
type GormSlot struct {
	db *gorm.DB
}

var _ Slot = (*GormSlot)(nil)

// NewGormSlot создаёт Slot поверх уже открытой и смигрированной БД.
func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{db: db}
}

func (s *GormSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var row model.Slot
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

// Put: один upsert-запрос, значение заменяется целиком.
func (s *GormSlot) Put(ctx context.Context, key string, value []byte) error {
	row := &model.Slot{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(row).Error
}

func (s *GormSlot) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
