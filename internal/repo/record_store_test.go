package repo

import (
	"ShareAMeal/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkDonation(id string) model.Donation {
	return model.Donation{
		ID:          id,
		Title:       "Bread",
		Description: "Fresh loaves",
		Address:     "12 Elm St",
		Image:       model.PlaceholderImage,
		ContactInfo: "555-1234",
		Expiry:      "2024-06-01",
		CreatedAt:   "2024-05-30T08:00:00.000Z",
		Password:    "abcd",
	}
}

// слот, который всегда падает, для проверки fail-soft
type brokenSlot struct{}

func (brokenSlot) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk gone") }
func (brokenSlot) Put(context.Context, string, []byte) error { return errors.New("disk gone") }
func (brokenSlot) Close() error { return nil }

func TestRecordStore_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cases := map[string][]model.Donation{
		"empty": {},
		"one":   {mkDonation("a")},
		"optional fields absent": {{
			ID: "b", Title: "Soup", Description: "Pot", Address: "1 Main", ContactInfo: "x", CreatedAt: "2024-01-01T00:00:00.000Z", Password: "pass",
		}},
		"many": {mkDonation("a"), mkDonation("b"), mkDonation("c")},
	}
	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			slot := NewMemorySlot()
			s := NewRecordStore(slot, "", nil)
			require.NoError(t, s.Save(ctx, records))

			// новый экземпляр имитирует перезагрузку страницы
			reloaded := NewRecordStore(slot, DefaultKey, nil).Load(ctx)
			assert.Equal(t, records, reloaded)
		})
	}
}

func TestRecordStore_SaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	s := NewRecordStore(slot, "k", nil)
	require.NoError(t, s.Save(ctx, nil))

	raw, err := slot.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestRecordStore_Load_MissingIsEmpty(t *testing.T) {
	got := NewRecordStore(NewMemorySlot(), "", nil).Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecordStore_Load_CorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	for _, blob := range []string{"", "{", "null", `{"id":"x"}`, `[1,2]`, `[{"id":5}]`} {
		slot := NewMemorySlot()
		require.NoError(t, slot.Put(ctx, DefaultKey, []byte(blob)))
		got := NewRecordStore(slot, DefaultKey, nil).Load(ctx)
		assert.Empty(t, got, "blob %q", blob)
	}
}

func TestRecordStore_BrokenSlot(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(brokenSlot{}, "", nil)
	assert.Empty(t, s.Load(ctx))
	assert.Error(t, s.Save(ctx, []model.Donation{mkDonation("a")}))
}

func TestDecode_CorruptWrapsSentinel(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":     "not json",
		"null":         "null",
		"null element": `[null,{"id":"a","password":"abcd"}]`,
		"empty id":     `[{"id":"","password":""}]`,
		"duplicate id": `[{"id":"a","password":"abcd"},{"id":"a","password":"zzzz"}]`,
	} {
		_, err := Decode([]byte(raw))
		assert.ErrorIs(t, err, model.ErrStoreCorrupt, name)
	}

	got, err := Decode([]byte(`[{"id":"x","title":"t","password":"pppp"}]`))
	require.NoError(t, err)
	assert.Equal(t, "x", got[0].ID)
}

func TestEncode_UsesCamelCaseNames(t *testing.T) {
	raw, err := Encode([]model.Donation{mkDonation("a")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"contactInfo":"555-1234"`)
	assert.Contains(t, string(raw), `"createdAt":"2024-05-30T08:00:00.000Z"`)
}

func TestLoad_DuplicateIDsTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	require.NoError(t, slot.Put(ctx, DefaultKey,
		[]byte(`[null,{"id":"a","password":"abcd"},{"id":"a","password":"zzzz"}]`)))

	got := NewRecordStore(slot, "", nil).Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
