package bootstrap

import (
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/notify"
	"ShareAMeal/internal/repo"
	fsrepo "ShareAMeal/internal/repo/fs"
	reposqlite "ShareAMeal/internal/repo/sqlite"
	"ShareAMeal/internal/service"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// OpenSlot открывает слот согласно конфигурации и возвращает (slot, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenSlot(cfg *config.Config) (repo.Slot, func() error, error) {
	var (
		slot repo.Slot
		err  error
	)
	switch cfg.StoreBackend {
	case "memory":
		slot = repo.NewMemorySlot()
	case "file":
		slot, err = fsrepo.Open(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
	case "gorm":
		db, derr := repo.InitDB(cfg.DatabaseDSN)
		if derr != nil {
			return nil, nil, derr
		}
		slot = repo.NewGormSlot(db)
	case "sqlite", "":
		s, _, oerr := reposqlite.Open(cfg.StorePath)
		if oerr != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", oerr)
		}
		if merr := s.Migrate(); merr != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("migrate sqlite store: %w", merr)
		}
		slot = s
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s (expected: memory|file|sqlite|gorm)", cfg.StoreBackend)
	}
	return slot, slot.Close, nil
}

// NewService собирает DonationService поверх настроенного хранилища.
func NewService(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, n notify.Notifier) (*service.DonationService, func() error, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	gate, err := service.NewPasswordGate(cfg.PasswordMode)
	if err != nil {
		return nil, nil, err
	}
	slot, cleanup, err := OpenSlot(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := repo.NewRecordStore(slot, cfg.StoreKey, logger)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithPasswordGate(gate),
		service.WithValidator(service.NewValidator(cfg.ImageMaxBytes())),
	}
	if n != nil {
		opts = append(opts, service.WithNotifier(n))
	}
	if cfg.PlaceholderImage != "" {
		opts = append(opts, service.WithPlaceholderImage(cfg.PlaceholderImage))
	}
	logger.Infow("store opened", "backend", cfg.StoreBackend, "key", cfg.StoreKey)
	return service.NewDonationService(ctx, store, opts...), cleanup, nil
}
