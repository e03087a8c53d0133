package sqlite

import (
	"ShareAMeal/internal/repo"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SlotSQLite: слоты в локальном файле SQLite (таблица kv).
type SlotSQLite struct {
	db *sql.DB
}

var _ repo.Slot = (*SlotSQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД в каталоге dir
// и возвращает хранилище. Вторым значением возвращается путь к БД.
func Open(dir string) (*SlotSQLite, string, error) {
	if dir == "" {
		return nil, "", errors.New("empty store dir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "sharemeal.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	return &SlotSQLite{db: db}, dbPath, nil
}

// Close закрывает соединение с БД.
func (s *SlotSQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate гарантирует наличие таблицы kv.
func (s *SlotSQLite) Migrate() error {
	_, err := s.db.Exec(initialDDL())
	return err
}

func (s *SlotSQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repo.ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Put заменяет значение одним UPSERT, транзакция SQLite не даёт увидеть полузаписанный blob.
func (s *SlotSQLite) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	return err
}
