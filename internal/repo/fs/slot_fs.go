package fs

import (
	"ShareAMeal/internal/repo"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// SlotFS хранит слоты в файлах, один файл на ключ в каталоге dir.
type SlotFS struct {
	dir string
}

var _ repo.Slot = (*SlotFS)(nil)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Open создаёт (при необходимости) каталог и возвращает хранилище.
func Open(dir string) (*SlotFS, error) {
	if dir == "" {
		return nil, errors.New("empty store dir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &SlotFS{dir: dir}, nil
}

func (s *SlotFS) path(key string) (string, error) {
	if !keyRe.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key: %q (allowed: letters, digits, . _ -)", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get читает содержимое слота.
func (s *SlotFS) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, repo.ErrSlotEmpty
	}
	return b, err
}

// Put пишет во временный файл и атомарно переименовывает его поверх старого.
func (s *SlotFS) Put(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	// в случае ошибки временный файл не должен оставаться
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Close: файловому хранилищу нечего закрывать.
func (s *SlotFS) Close() error { return nil }
