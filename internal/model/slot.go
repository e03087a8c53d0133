package model

import "time"

// Slot: строка key/value для gorm-хранилища. Вся коллекция живёт в одном value.
type Slot struct {
	Key       string    `gorm:"column:slot_key;primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName фиксирует имя таблицы.
func (Slot) TableName() string { return "kv_slots" }
