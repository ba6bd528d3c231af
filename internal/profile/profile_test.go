package profile_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/bodymind/internal/profile"
	"codeberg.org/mutker/bodymind/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := profile.DefaultRegistry()

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, profile.Profile{ID: "sri", Name: "Sri", Tag: "Default profile"}, all[0])
	assert.Equal(t, "Deep Focus", all[1].Name)
	assert.Equal(t, "Low-load days", all[2].Tag)

	all[0].Name = "mutated"
	assert.Equal(t, "Sri", r.All()[0].Name, "All returns a copy")
}

func TestLookupAndResolve(t *testing.T) {
	r := profile.DefaultRegistry()

	p, ok := r.Lookup("recovery")
	assert.True(t, ok)
	assert.Equal(t, "Recovery", p.Name)

	_, ok = r.Lookup("ghost")
	assert.False(t, ok)

	assert.Equal(t, "sri", r.Resolve("ghost").ID)
	assert.Equal(t, "focus", r.Resolve("focus").ID)
}

func TestNextPrevWrap(t *testing.T) {
	r := profile.DefaultRegistry()

	assert.Equal(t, "focus", r.Next("sri").ID)
	assert.Equal(t, "sri", r.Next("recovery").ID)
	assert.Equal(t, "recovery", r.Prev("sri").ID)
	assert.Equal(t, "sri", r.Prev("focus").ID)
	assert.Equal(t, "focus", r.Next("unknown").ID)
}

func TestNewRegistryEmptyFallsBack(t *testing.T) {
	r := profile.NewRegistry(nil)
	assert.Len(t, r.All(), 3)
}

func TestStoredProfiles(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	stored := profile.NewStored(st)

	assert.Empty(t, stored.List(ctx))

	want := profile.DefaultRegistry().All()
	require.NoError(t, stored.Replace(ctx, want))
	assert.Equal(t, want, stored.List(ctx))

	require.NoError(t, stored.Replace(ctx, nil))
	raw, ok, err := st.GetItem(ctx, storage.KeyProfiles)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestStoredProfilesToleratesLooseContent(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	stored := profile.NewStored(st)

	require.NoError(t, st.SetItem(ctx, storage.KeyProfiles,
		`[{"id":"a","name":"A","extra":true},{"name":"no id"},{"id":"b"}]`))
	assert.Equal(t, []profile.Profile{{ID: "a", Name: "A"}, {ID: "b"}}, stored.List(ctx))

	require.NoError(t, st.SetItem(ctx, storage.KeyProfiles, `{"not":"an array"}`))
	assert.Empty(t, stored.List(ctx))
}
