package service

import (
	"ShareAMeal/internal/model"
	"ShareAMeal/internal/notify"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinPasswordLen: минимальная длина пароля для управления объявлением.
	MinPasswordLen = 4
	// DefaultImageMaxBytes: лимит размера загружаемого изображения (5 MiB).
	DefaultImageMaxBytes int64 = 5 * 1024 * 1024
)

// Validator проверяет поля перед созданием записи.
type Validator struct {
	ImageMaxBytes int64
}

// NewValidator создаёт валидатор; maxBytes <= 0 означает лимит по умолчанию.
func NewValidator(maxBytes int64) Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultImageMaxBytes
	}
	return Validator{ImageMaxBytes: maxBytes}
}

// ValidateForCreate собирает все нарушения в одну *model.ValidationError.
// Значения сохраняются как есть: пробелы обрезаются только для проверки на пустоту.
func (v Validator) ValidateForCreate(c model.CandidateFields) (model.ValidatedFields, error) {
	ve := &model.ValidationError{}
	required := []struct{ field, value string }{
		{"title", c.Title},
		{"description", c.Description},
		{"address", c.Address},
		{"contactInfo", c.ContactInfo},
		{"password", c.Password},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			ve.Add(r.field, "required")
		}
	}
	if c.Password != "" && utf8.RuneCountInString(c.Password) < MinPasswordLen {
		ve.Add("password", "must be at least 4 characters")
	}
	if strings.TrimSpace(c.Expiry) != "" {
		if _, err := time.Parse(model.ExpiryLayout, strings.TrimSpace(c.Expiry)); err != nil {
			ve.Add("expiry", "must be a date (YYYY-MM-DD)")
		}
	}
	if !ve.Empty() {
		return model.ValidatedFields{}, ve
	}
	return model.ValidatedFields{
		Title:       c.Title,
		Description: c.Description,
		Address:     c.Address,
		ContactInfo: c.ContactInfo,
		Expiry:      strings.TrimSpace(c.Expiry),
		Password:    c.Password,
		Image:       c.Image,
	}, nil
}

// ValidateImage проверяет тип и размер загружаемого файла.
// Отказ не блокирует создание записи: вызывающий просто не использует изображение.
func (v Validator) ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return model.NewValidationError("image", "please select an image file").WithCause(model.ErrImageType)
	}
	limit := v.ImageMaxBytes
	if limit <= 0 {
		limit = DefaultImageMaxBytes
	}
	if size > limit {
		return model.NewValidationError("image", "image size should be less than "+notify.FormatSize(limit)).WithCause(model.ErrImageTooLarge)
	}
	return nil
}
