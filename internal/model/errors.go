package model

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound: запись с таким id отсутствует.
	ErrNotFound = errors.New("donation not found")
	// ErrUnauthorized: пароль не совпал с сохранённым.
	ErrUnauthorized = errors.New("incorrect password")
	// ErrStoreCorrupt: сохранённый blob не разбирается как массив записей.
	ErrStoreCorrupt = errors.New("store corrupt")

	ErrImageType     = errors.New("please select an image file")
	ErrImageTooLarge = errors.New("image is too large")
)

// ValidationError описывает все нарушенные ограничения по полям.
type ValidationError struct {
	Fields map[string]string
	cause  error
}

// NewValidationError создаёт ошибку для одного поля.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add добавляет нарушение по полю.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

// Empty: нет ни одного нарушения.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap позволяет errors.Is(err, ErrImageType) и т.п.
func (e *ValidationError) Unwrap() error { return e.cause }

// WithCause привязывает sentinel-ошибку.
func (e *ValidationError) WithCause(err error) *ValidationError {
	e.cause = err
	return e
}

// IsValidation сообщает, является ли err ошибкой валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
