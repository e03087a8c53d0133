package service

import (
	"ShareAMeal/internal/model"
	"ShareAMeal/internal/notify"
	"ShareAMeal/internal/repo"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State: состояние коллекции целиком, зависит только от её размера.
type State int

const (
	StateEmpty State = iota
	StatePopulated
)

func (s State) String() string {
	if s == StatePopulated {
		return "populated"
	}
	return "empty"
}

// Lifecycle описывает юзкейс-уровень работы с объявлениями для слоя представления.
type Lifecycle interface {
	Create(ctx context.Context, fields model.CandidateFields) (model.Donation, error)
	List(ctx context.Context) []model.Donation
	Get(ctx context.Context, id string) (model.Donation, error)
	Delete(ctx context.Context, id, password string) error
	State() State
}

// DonationService владеет коллекцией записей текущей сессии
// и синхронно сохраняет её через RecordStore после каждой мутации.
type DonationService struct {
	mu      sync.Mutex
	records []model.Donation

	store       repo.RecordStore
	validator   Validator
	gate        PasswordGate
	newID       func() string
	now         func() time.Time
	placeholder string
	notifier    notify.Notifier
	logger      *zap.SugaredLogger
}

var _ Lifecycle = (*DonationService)(nil)

// Option настраивает DonationService.
type Option func(*DonationService)

func WithIDGenerator(f func() string) Option { return func(s *DonationService) { s.newID = f } }
func WithClock(f func() time.Time) Option { return func(s *DonationService) { s.now = f } }
func WithValidator(v Validator) Option { return func(s *DonationService) { s.validator = v } }
func WithPasswordGate(g PasswordGate) Option { return func(s *DonationService) { s.gate = g } }
func WithNotifier(n notify.Notifier) Option { return func(s *DonationService) { s.notifier = n } }
func WithLogger(l *zap.SugaredLogger) Option { return func(s *DonationService) { s.logger = l } }

// WithPlaceholderImage переопределяет изображение по умолчанию.
func WithPlaceholderImage(uri string) Option {
	return func(s *DonationService) { s.placeholder = uri }
}

// NewDonationService создаёт сервис и один раз загружает коллекцию из хранилища.
func NewDonationService(ctx context.Context, store repo.RecordStore, opts ...Option) *DonationService {
	s := &DonationService{
		store:       store,
		validator:   NewValidator(0),
		gate:        PlainGate{},
		newID:       uuid.NewString,
		now:         time.Now,
		placeholder: model.PlaceholderImage,
		notifier:    notify.Nop{},
		logger:      zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(s)
	}
	s.records = store.Load(ctx)
	s.logger.Infow("donations loaded", "count", len(s.records))
	return s
}

// Create проверяет поля, присваивает id и createdAt, добавляет запись и сохраняет коллекцию.
// При ошибке валидации состояние не меняется.
func (s *DonationService) Create(ctx context.Context, fields model.CandidateFields) (model.Donation, error) {
	valid, err := s.validator.ValidateForCreate(fields)
	if err != nil {
		s.notifier.Error(validationMessage(err))
		return model.Donation{}, err
	}
	sealed, err := s.gate.Seal(valid.Password)
	if err != nil {
		s.notifier.Error(err.Error())
		return model.Donation{}, err
	}
	valid.Password = sealed

	image := valid.Image
	if image == "" {
		image = s.placeholder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.uniqueID()
	d := model.NewDonation(id, valid, s.createdAt(), image)

	s.records = append(s.records, d)
	if err := s.store.Save(ctx, s.records); err != nil {
		s.records = s.records[:len(s.records)-1]
		s.logger.Errorw("save after create failed", "id", id, "error", err)
		s.notifier.Error("Could not save donation")
		return model.Donation{}, fmt.Errorf("create donation: %w", err)
	}
	s.logger.Infow("donation created", "id", id, "count", len(s.records))
	s.notifier.Success(notify.MsgPosted)
	return d, nil
}

// List возвращает копию коллекции в порядке добавления (старые первыми).
func (s *DonationService) List(_ context.Context) []model.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Donation, len(s.records))
	copy(out, s.records)
	return out
}

// Get возвращает запись по id.
func (s *DonationService) Get(_ context.Context, id string) (model.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], nil
	}
	return model.Donation{}, model.ErrNotFound
}

// Delete удаляет запись, если пароль совпадает с сохранённым.
func (s *DonationService) Delete(ctx context.Context, id, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.notifier.Error(notify.MsgNotFound)
		return model.ErrNotFound
	}
	if !s.gate.Match(s.records[i].Password, password) {
		s.logger.Warnw("delete rejected: wrong password", "id", id)
		s.notifier.Error(notify.MsgWrongPassword)
		return model.ErrUnauthorized
	}

	prev := s.records
	next := make([]model.Donation, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Errorw("save after delete failed", "id", id, "error", err)
		s.notifier.Error("Could not delete donation")
		return fmt.Errorf("delete donation: %w", err)
	}
	s.records = next
	s.logger.Infow("donation deleted", "id", id, "count", len(s.records))
	s.notifier.Success(notify.MsgDeleted)
	return nil
}

// State сообщает, пуста ли коллекция.
func (s *DonationService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return StateEmpty
	}
	return StatePopulated
}

func (s *DonationService) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *DonationService) uniqueID() string {
	for attempt := 0; attempt < 3; attempt++ {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
		s.logger.Warnw("generated id collides, retrying", "id", id)
	}
	return uuid.NewString()
}

// createdAt не убывает относительно последней записи, даже если часы ушли назад.
func (s *DonationService) createdAt() time.Time {
	t := s.now()
	if n := len(s.records); n > 0 {
		if last := s.records[n-1].CreatedTime(); !last.IsZero() && t.Before(last) {
			return last
		}
	}
	return t
}

func validationMessage(err error) string {
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for _, msg := range ve.Fields {
		if msg == "required" {
			return notify.MsgRequired
		}
	}
	if _, ok := ve.Fields["password"]; ok {
		return notify.MsgPasswordLength
	}
	return ve.Error()
}
