package corpus_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuzzkit/genstage/internal/corpus"
	"github.com/fuzzkit/genstage/pkg/fs"
)

func TestFileStore_Seed_Then_Entry_Round_Trips_Input_And_Metadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := corpus.NewFileStore(dir, fs.NewReal())

	require.NoError(t, store.Seed(0, []byte("AAAA"), corpus.Metadata{Novelties: []int{0}, Reason: "contains A"}))

	entry, err := store.Entry(0)
	require.NoError(t, err)

	in, err := entry.LoadInput()
	require.NoError(t, err)
	require.Equal(t, "AAAA", string(in.Bytes))
	require.Nil(t, in.Generalized, "Generalized should be nil before any store")

	meta, ok := entry.Metadata()
	require.True(t, ok)
	require.Equal(t, []int{0}, meta.Novelties)
	require.Equal(t, "contains A", meta.Reason)
}

func TestFileStore_StoreInput_Persists_Generalized_Form(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := corpus.NewFileStore(dir, fs.NewReal())

	if err := store.Seed(0, []byte("AAAA"), corpus.Metadata{Novelties: []int{0}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	entry, err := store.Entry(0)
	if err != nil {
		t.Fatalf("Entry(0): %v", err)
	}

	in, err := entry.LoadInput()
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}

	in.Generalized = []corpus.SlotTag{{IsGap: true}, {IsGap: true}, {IsGap: true}, {Value: 'A'}}
	if err := entry.StoreInput(in); err != nil {
		t.Fatalf("StoreInput: %v", err)
	}

	reloaded, err := store.Entry(0)
	if err != nil {
		t.Fatalf("Entry(0) reload: %v", err)
	}

	got, err := reloaded.LoadInput()
	if err != nil {
		t.Fatalf("LoadInput reload: %v", err)
	}

	if len(got.Generalized) != 4 {
		t.Fatalf("len(Generalized) = %d, want 4", len(got.Generalized))
	}

	if got.Generalized[3] != (corpus.SlotTag{Value: 'A'}) {
		t.Fatalf("Generalized[3] = %+v, want Value='A'", got.Generalized[3])
	}
}

func TestFileStore_Indices_Lists_Seeded_Entries_In_Order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := corpus.NewFileStore(dir, fs.NewReal())

	for _, idx := range []int{3, 1, 2} {
		if err := store.Seed(idx, []byte("x"), corpus.Metadata{Novelties: []int{0}}); err != nil {
			t.Fatalf("Seed(%d): %v", idx, err)
		}
	}

	got, err := store.Indices()
	if err != nil {
		t.Fatalf("Indices: %v", err)
	}

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Indices = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Indices = %v, want %v", got, want)
		}
	}
}

func TestFileStore_Indices_On_Missing_Dir_Returns_Empty(t *testing.T) {
	t.Parallel()

	store := corpus.NewFileStore(filepath.Join(t.TempDir(), "missing"), fs.NewReal())

	got, err := store.Indices()
	if err != nil {
		t.Fatalf("Indices: %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("Indices = %v, want empty", got)
	}
}

func TestFileStore_Entry_Missing_Index_Returns_ErrNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := corpus.NewFileStore(dir, fs.NewReal())

	if _, err := store.Entry(7); err == nil {
		t.Fatalf("Entry(7) error = nil, want ErrNotFound")
	}
}
