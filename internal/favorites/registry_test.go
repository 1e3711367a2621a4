package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pet-adoption-catalog/internal/adapters/storage/memory"
	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/platform/localstore"
)

type failingKV struct {
	*memory.KV
	setErr error
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KV.Set(ctx, key, value)
}

func TestToggle_RoundTripsThroughStorage(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()

	r := New(ctx, kv, nil)
	on, err := r.Toggle(ctx, "3")
	require.NoError(t, err)
	require.True(t, on)
	_, err = r.Toggle(ctx, "7")
	require.NoError(t, err)

	raw, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.JSONEq(t, `["3","7"]`, raw)

	reloaded := New(ctx, kv, nil)
	require.True(t, reloaded.IsFavorite("3"))
	require.True(t, reloaded.IsFavorite("7"))

	off, err := reloaded.Toggle(ctx, "3")
	require.NoError(t, err)
	require.False(t, off)
	require.Equal(t, []string{"7"}, reloaded.IDs())
}

func TestNew_CorruptOrMissingValueIsEmpty(t *testing.T) {
	ctx := context.Background()

	for name, raw := range map[string]string{
		"not json":   "{{nope",
		"not array":  `{"3":true}`,
		"empty text": "",
	} {
		t.Run(name, func(t *testing.T) {
			kv := memory.NewKV()
			require.NoError(t, kv.Set(ctx, StorageKey, raw))
			require.Empty(t, New(ctx, kv, nil).IDs())
		})
	}

	require.Empty(t, New(ctx, memory.NewKV(), nil).IDs())
}

func TestNew_ToleratesNumericIDsAndDuplicates(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()
	require.NoError(t, kv.Set(ctx, StorageKey, `[1,"2","2",null,{"x":1}]`))

	require.Equal(t, []string{"1", "2"}, New(ctx, kv, nil).IDs())
}

func TestToggle_PersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	kv := failingKV{KV: memory.NewKV(), setErr: errors.New("disk full")}

	r := New(ctx, kv, nil)
	on, err := r.Toggle(ctx, "1")
	require.Error(t, err)
	require.False(t, on)
	require.False(t, r.IsFavorite("1"))
}

func TestClearAll_RemovesKey(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()
	r := New(ctx, kv, nil)
	_, _ = r.Toggle(ctx, "1")

	require.NoError(t, r.ClearAll(ctx))
	require.Empty(t, r.IDs())
	_, err := kv.Get(ctx, StorageKey)
	require.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestResolve_SkipsStaleIDsAndKeepsRecordOrder(t *testing.T) {
	ctx := context.Background()
	r := New(ctx, memory.NewKV(), nil)
	for _, id := range []string{"9", "1", "gone"} {
		_, err := r.Toggle(ctx, id)
		require.NoError(t, err)
	}

	records := []pets.Pet{{ID: "1", Name: "Rex"}, {ID: "5"}, {ID: "9", Name: "Michi"}}
	got := r.Resolve(records)

	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "9", got[1].ID)
	// El id obsoleto sigue en el set.
	require.True(t, r.IsFavorite("gone"))
}

func TestToggle_RejectsBlankID(t *testing.T) {
	r := New(context.Background(), memory.NewKV(), nil)
	_, err := r.Toggle(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidID)
}
