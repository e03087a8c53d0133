package repo

import (
	"ShareAMeal/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultKey: ключ, под которым хранится вся коллекция.
const DefaultKey = "donations"

// RecordStore читает и пишет упорядоченную коллекцию записей в один слот.
type RecordStore interface {
	// Load возвращает сохранённую коллекцию. Ошибок наружу не отдаёт:
	// отсутствие или повреждение данных трактуется как пустая коллекция.
	Load(ctx context.Context) []model.Donation
	// Save перезаписывает слот полным снимком коллекции.
	Save(ctx context.Context, records []model.Donation) error
}

type recordStore struct {
	slot   Slot
	key    string
	logger *zap.SugaredLogger
}

// NewRecordStore создаёт RecordStore поверх слота с фиксированным ключом.
func NewRecordStore(slot Slot, key string, logger *zap.SugaredLogger) RecordStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &recordStore{slot: slot, key: key, logger: logger}
}

func (s *recordStore) Load(ctx context.Context) []model.Donation {
	records, err := s.load(ctx)
	if err != nil {
		s.logger.Warnw("stored donations unreadable, starting empty", "key", s.key, "error", err)
		return []model.Donation{}
	}
	return records
}

func (s *recordStore) load(ctx context.Context) ([]model.Donation, error) {
	raw, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrSlotEmpty) {
		return []model.Donation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	return Decode(raw)
}

func (s *recordStore) Save(ctx context.Context, records []model.Donation) error {
	raw, err := Encode(records)
	if err != nil {
		return err
	}
	if err := s.slot.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}

// Encode сериализует коллекцию в JSON-массив. Пустая коллекция даёт "[]".
func Encode(records []model.Donation) ([]byte, error) {
	if records == nil {
		records = []model.Donation{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode donations: %w", err)
	}
	return raw, nil
}

// Decode разбирает JSON-массив записей. Любая ошибка формата даёт ErrStoreCorrupt.
// "null", пустой blob, запись без id и повтор id тоже считаются повреждением.
func Decode(raw []byte) ([]model.Donation, error) {
	var records []model.Donation
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreCorrupt, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: not an array", model.ErrStoreCorrupt)
	}
	seen := make(map[string]struct{}, len(records))
	for i, d := range records {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", model.ErrStoreCorrupt, i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", model.ErrStoreCorrupt, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return records, nil
}
