package model

import (
	"strings"
	"time"
)

// PlaceholderImage: изображение по умолчанию, если донор не загрузил фото.
const PlaceholderImage = "https://images.unsplash.com/photo-1618160702438-9b02ab6515c9?w=500&auto=format&fit=crop"

// ExpiryLayout: формат поля expiry (значение HTML date input).
const ExpiryLayout = "2006-01-02"

// CreatedAtLayout: ISO 8601 с миллисекундами, как у Date.toISOString().
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Donation: объявление о раздаче еды. Форма JSON совпадает с сохранённым массивом.
type Donation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Image       string `json:"image"`
	ContactInfo string `json:"contactInfo"`
	Expiry      string `json:"expiry"`
	CreatedAt   string `json:"createdAt"`
	Password    string `json:"password"`
}

// NewDonation собирает запись из уже проверенных полей.
// Пустое изображение заменяется плейсхолдером.
func NewDonation(id string, f ValidatedFields, createdAt time.Time, image string) Donation {
	if image == "" {
		image = PlaceholderImage
	}
	return Donation{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Address:     f.Address,
		Image:       image,
		ContactInfo: f.ContactInfo,
		Expiry:      f.Expiry,
		CreatedAt:   FormatCreatedAt(createdAt),
		Password:    f.Password,
	}
}

// FormatCreatedAt приводит время к UTC и формату createdAt.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}

// CreatedTime разбирает createdAt. Для повреждённых значений возвращает нулевое время.
func (d Donation) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ExpiryDate возвращает дату "best before", если она задана.
func (d Donation) ExpiryDate() (time.Time, bool) {
	if strings.TrimSpace(d.Expiry) == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(ExpiryLayout, d.Expiry)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Expired используется только для отображения, список никогда не фильтруется по сроку.
func (d Donation) Expired(now time.Time) bool {
	t, ok := d.ExpiryDate()
	if !ok {
		return false
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return t.Before(today)
}

// Public возвращает копию без пароля, для вывода наружу.
func (d Donation) Public() Donation {
	d.Password = ""
	return d
}

// CandidateFields: сырые поля формы до проверки.
type CandidateFields struct {
	Title       string
	Description string
	Address     string
	ContactInfo string
	Expiry      string
	Password    string
	Image       string
}

// ValidatedFields: поля, прошедшие проверку валидатором.
type ValidatedFields struct {
	Title       string
	Description string
	Address     string
	ContactInfo string
	Expiry      string
	Password    string
	Image       string
}
