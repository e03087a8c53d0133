package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordGate решает, что хранить в поле password и как сверять пароль при удалении.
type PasswordGate interface {
	Seal(password string) (string, error)
	Match(stored, supplied string) bool
}

// PlainGate используется по умолчанию, пароль хранится открытым текстом,
// удаление разрешено только при точном совпадении строк.
type PlainGate struct{}

func (PlainGate) Seal(password string) (string, error) { return password, nil }

func (PlainGate) Match(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptGate хранит bcrypt-хэш. Включается явно (PASSWORD_MODE=bcrypt):
// сохранённое поле password перестаёт совпадать с введённым значением.
type BcryptGate struct {
	Cost int
}

func (g BcryptGate) Seal(password string) (string, error) {
	cost := g.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (BcryptGate) Match(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// NewPasswordGate выбирает реализацию по режиму из конфигурации.
func NewPasswordGate(mode string) (PasswordGate, error) {
	switch mode {
	case "", "plain":
		return PlainGate{}, nil
	case "bcrypt":
		return BcryptGate{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode: %s (expected: plain|bcrypt)", mode)
	}
}
