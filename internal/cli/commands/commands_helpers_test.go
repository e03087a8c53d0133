package commands

import (
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/notify"
	"ShareAMeal/internal/repo"
	"ShareAMeal/internal/service"
	"bytes"
	"context"
	"testing"
)

// withMemoryService подменяет OpenService сервисом над общим in-memory слотом,
// чтобы несколько команд подряд видели одни и те же данные.
func withMemoryService(t *testing.T) *repo.MemorySlot {
	t.Helper()
	slot := repo.NewMemorySlot()
	old := OpenService
	OpenService = func(ctx context.Context, cfg *config.Config) (service.Lifecycle, func() error, error) {
		st := repo.NewRecordStore(slot, "", nil)
		svc := service.NewDonationService(ctx, st, service.WithNotifier(notify.NewWriter(Out)))
		return svc, func() error { return nil }, nil
	}
	t.Cleanup(func() { OpenService = old })
	return slot
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

func testConfig() *config.Config {
	return &config.Config{StoreBackend: "memory", StoreKey: "donations", ImageMaxMB: 5}
}
