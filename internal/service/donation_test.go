package service

import (
	"ShareAMeal/internal/model"
	"ShareAMeal/internal/notify"
	"ShareAMeal/internal/notify/notifytest"
	"ShareAMeal/internal/repo"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Мок хранилища ---
type mockStore struct{ mock.Mock }

func (m *mockStore) Load(ctx context.Context) []model.Donation {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Donation); ok {
		return v
	}
	return []model.Donation{}
}

func (m *mockStore) Save(ctx context.Context, records []model.Donation) error {
	// копия, чтобы последующие мутации не влияли на проверки
	cp := make([]model.Donation, len(records))
	copy(cp, records)
	return m.Called(ctx, cp).Error(0)
}

var _ repo.RecordStore = (*mockStore)(nil)

func bread() model.CandidateFields {
	return model.CandidateFields{
		Title:       "Bread",
		Description: "Fresh loaves",
		Address:     "12 Elm St",
		ContactInfo: "555-1234",
		Password:    "abcd",
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newMemService(t *testing.T, opts ...Option) (*DonationService, repo.RecordStore) {
	t.Helper()
	st := repo.NewRecordStore(repo.NewMemorySlot(), "", nil)
	return NewDonationService(context.Background(), st, opts...), st
}

func TestCreate_BreadScenario(t *testing.T) {
	ctx := context.Background()
	rec := &notifytest.Recorder{}
	svc, st := newMemService(t, WithNotifier(rec))
	assert.Equal(t, StateEmpty, svc.State())

	before := time.Now()
	d, err := svc.Create(ctx, bread())
	require.NoError(t, err)

	list := svc.List(ctx)
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, d, list[0])
	assert.WithinDuration(t, before, list[0].CreatedTime(), 2*time.Second)
	assert.Equal(t, model.PlaceholderImage, list[0].Image)
	assert.Equal(t, StatePopulated, svc.State())
	assert.Equal(t, []string{notify.MsgPosted}, rec.Successes)

	// сохранено синхронно
	assert.Equal(t, list, st.Load(ctx))

	require.NoError(t, svc.Delete(ctx, d.ID, "abcd"))
	assert.Empty(t, svc.List(ctx))
	assert.Empty(t, st.Load(ctx))
	assert.Equal(t, StateEmpty, svc.State())
}

func TestCreate_RoundTripFields(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	svc, _ := newMemService(t, WithIDGenerator(seqIDs()), WithClock(func() time.Time { return at }))

	in := bread()
	in.Expiry = "2024-02-03"
	in.Image = "data:image/png;base64,iVBORw0KGgo="
	d, err := svc.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, model.Donation{
		ID:          "id-1",
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Image:       in.Image,
		ContactInfo: in.ContactInfo,
		Expiry:      in.Expiry,
		CreatedAt:   "2024-02-01T09:30:00.000Z",
		Password:    in.Password,
	}, d)
}

func TestCreate_PasswordBoundary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemService(t)

	short := bread()
	short.Password = "abc"
	_, err := svc.Create(ctx, short)
	assert.True(t, model.IsValidation(err))
	assert.Empty(t, svc.List(ctx))

	ok := bread()
	ok.Password = "abcd"
	_, err = svc.Create(ctx, ok)
	assert.NoError(t, err)
	assert.Len(t, svc.List(ctx), 1)
}

func TestCreate_MissingTitle(t *testing.T) {
	ctx := context.Background()
	rec := &notifytest.Recorder{}
	svc, _ := newMemService(t, WithNotifier(rec))

	in := bread()
	in.Title = ""
	_, err := svc.Create(ctx, in)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Empty(t, svc.List(ctx))
	assert.Equal(t, []string{notify.MsgRequired}, rec.Errors)
}

func TestCreate_UniqueIDsAndMonotonicCreatedAt(t *testing.T) {
	ctx := context.Background()
	times := []time.Time{
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), // часы ушли назад
	}
	i := 0
	ids := []string{"dup", "dup", "other"}
	j := 0
	svc, _ := newMemService(t,
		WithClock(func() time.Time { ts := times[i]; i++; return ts }),
		WithIDGenerator(func() string { id := ids[j]; j++; return id }),
	)

	a, err := svc.Create(ctx, bread())
	require.NoError(t, err)
	b, err := svc.Create(ctx, bread())
	require.NoError(t, err)

	assert.Equal(t, "dup", a.ID)
	assert.Equal(t, "other", b.ID)
	assert.False(t, b.CreatedTime().Before(a.CreatedTime()))
}

func TestCreate_SaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	st := new(mockStore)
	st.On("Load", mock.Anything).Return([]model.Donation{}).Once()
	st.On("Save", mock.Anything, mock.Anything).Return(errors.New("quota exceeded")).Once()

	svc := NewDonationService(ctx, st)
	_, err := svc.Create(ctx, bread())
	assert.Error(t, err)
	assert.Empty(t, svc.List(ctx))
	st.AssertExpectations(t)
}

func TestCreate_ValidationDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	st := new(mockStore)
	st.On("Load", mock.Anything).Return([]model.Donation{}).Once()

	svc := NewDonationService(ctx, st)
	_, err := svc.Create(ctx, model.CandidateFields{})
	assert.Error(t, err)
	st.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	svc, st := newMemService(t, WithIDGenerator(seqIDs()))
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, bread())
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, "id-2", "abcd"))
	list := svc.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "id-1", list[0].ID)
	assert.Equal(t, "id-3", list[1].ID)
	assert.Equal(t, list, st.Load(ctx))
}

func TestDelete_WrongPassword(t *testing.T) {
	ctx := context.Background()
	rec := &notifytest.Recorder{}
	svc, st := newMemService(t, WithNotifier(rec))
	d, err := svc.Create(ctx, bread())
	require.NoError(t, err)

	err = svc.Delete(ctx, d.ID, "abce")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
	assert.Len(t, svc.List(ctx), 1)
	assert.Len(t, st.Load(ctx), 1)
	assert.Contains(t, rec.Errors, notify.MsgWrongPassword)

	// пароль сравнивается точно: пробелы и регистр имеют значение
	assert.ErrorIs(t, svc.Delete(ctx, d.ID, "ABCD"), model.ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete(ctx, d.ID, "abcd "), model.ErrUnauthorized)
}

func TestDelete_UnknownID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemService(t)
	_, err := svc.Create(ctx, bread())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "missing", "abcd"), model.ErrNotFound)
	assert.Len(t, svc.List(ctx), 1)
}

func TestDelete_SaveFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	existing := model.Donation{ID: "x", Password: "abcd", CreatedAt: "2024-01-01T00:00:00.000Z"}
	st := new(mockStore)
	st.On("Load", mock.Anything).Return([]model.Donation{existing}).Once()
	st.On("Save", mock.Anything, []model.Donation{}).Return(errors.New("disk full")).Once()

	svc := NewDonationService(ctx, st)
	assert.Error(t, svc.Delete(ctx, "x", "abcd"))
	assert.Equal(t, []model.Donation{existing}, svc.List(ctx))
	st.AssertExpectations(t)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemService(t)
	d, err := svc.Create(ctx, bread())
	require.NoError(t, err)

	got, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestNewDonationService_LoadsPersisted(t *testing.T) {
	ctx := context.Background()
	slot := repo.NewMemorySlot()
	st := repo.NewRecordStore(slot, "", nil)
	first := NewDonationService(ctx, st)
	d, err := first.Create(ctx, bread())
	require.NoError(t, err)

	// перезагрузка: новая сессия видит ту же коллекцию
	second := NewDonationService(ctx, repo.NewRecordStore(slot, "", nil))
	assert.Equal(t, []model.Donation{d}, second.List(ctx))
}

func TestList_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemService(t)
	_, err := svc.Create(ctx, bread())
	require.NoError(t, err)

	l := svc.List(ctx)
	l[0].Title = "changed"
	assert.Equal(t, "Bread", svc.List(ctx)[0].Title)
}

func TestBcryptGate_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemService(t, WithPasswordGate(BcryptGate{Cost: 4}))
	d, err := svc.Create(ctx, bread())
	require.NoError(t, err)
	assert.NotEqual(t, "abcd", d.Password)

	assert.ErrorIs(t, svc.Delete(ctx, d.ID, "wrong"), model.ErrUnauthorized)
	assert.NoError(t, svc.Delete(ctx, d.ID, "abcd"))
}

func TestWithPlaceholderImage(t *testing.T) {
	svc, _ := newMemService(t, WithPlaceholderImage("https://example.org/food.png"))
	d, err := svc.Create(context.Background(), bread())
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/food.png", d.Image)
}

func TestNewDonationService_RejectsBlobWithBrokenIDs(t *testing.T) {
	ctx := context.Background()
	slot := repo.NewMemorySlot()
	require.NoError(t, slot.Put(ctx, repo.DefaultKey,
		[]byte(`[null,{"id":"a","password":"abcd"},{"id":"a","password":"zzzz"}]`)))

	svc := NewDonationService(ctx, repo.NewRecordStore(slot, "", nil))
	assert.Equal(t, StateEmpty, svc.State())
	assert.ErrorIs(t, svc.Delete(ctx, "", ""), model.ErrNotFound)
}
