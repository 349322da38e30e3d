package edittrack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "4242"

func TestPathSet(t *testing.T) {
	t.Parallel()

	s := NewPathSet([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
	assert.True(t, s.Contains("c"))
	assert.False(t, s.Add("c"))
	assert.True(t, s.Add("d"))
	assert.Equal(t, 4, s.Len())

	var zero PathSet
	assert.True(t, zero.Add("x"))
	assert.Equal(t, 1, zero.Len())
}

func TestTracker_ThresholdFiresExactlyOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(NewMemoryStore(), DefaultReviewThreshold)

	var due []bool
	for _, p := range []string{"a.go", "b.go", "c.go", "d.go", "e.go"} {
		due = append(due, tr.Record(ctx, testKey, p).ReviewDue)
	}
	assert.Equal(t, []bool{false, false, true, false, false}, due)
}

func TestTracker_DuplicateEditsCountOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	tr := NewTracker(store, DefaultReviewThreshold)

	first := tr.Record(ctx, testKey, "a.go")
	second := tr.Record(ctx, testKey, "a.go")

	assert.True(t, first.Added)
	assert.False(t, second.Added)
	assert.Equal(t, 1, second.Distinct)

	recorded, err := store.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, recorded)
}

func TestTracker_RepeatAtThresholdDoesNotRefire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(NewMemoryStore(), DefaultReviewThreshold)

	tr.Record(ctx, testKey, "a.go")
	tr.Record(ctx, testKey, "b.go")
	require.True(t, tr.Record(ctx, testKey, "c.go").ReviewDue)

	// Editing an already-counted file keeps the count at the threshold.
	again := tr.Record(ctx, testKey, "a.go")
	assert.Equal(t, 3, again.Distinct)
	assert.False(t, again.ReviewDue)
}

func TestTracker_SessionsAreIsolated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(NewMemoryStore(), 2)

	tr.Record(ctx, "1", "a.go")
	res := tr.Record(ctx, "2", "b.go")
	assert.Equal(t, 1, res.Distinct)
	assert.False(t, res.ReviewDue)
	assert.True(t, tr.Record(ctx, "1", "b.go").ReviewDue)
}

func TestTracker_LoadErrorTreatedAsEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.LoadErr = errors.New("disk on fire")
	tr := NewTracker(store, DefaultReviewThreshold)

	res := tr.Record(context.Background(), testKey, "a.go")
	assert.Equal(t, Result{Distinct: 1, Added: true}, res)
}

func TestTracker_AppendErrorStillCountsThisInvocation(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	_ = store.Append(context.Background(), testKey, "a.go")
	_ = store.Append(context.Background(), testKey, "b.go")
	store.AppendErr = errors.New("read-only")
	tr := NewTracker(store, DefaultReviewThreshold)

	res := tr.Record(context.Background(), testKey, "c.go")
	assert.Equal(t, 3, res.Distinct)
	assert.True(t, res.ReviewDue)
}

func TestNewTracker_InvalidThresholdUsesDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultReviewThreshold, NewTracker(NewMemoryStore(), 0).Threshold())
	assert.Equal(t, DefaultReviewThreshold, NewTracker(NewMemoryStore(), -5).Threshold())
	assert.Equal(t, 5, NewTracker(NewMemoryStore(), 5).Threshold())
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())
	paths, err := store.Load(context.Background(), testKey)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFileStore_AppendAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, testKey, "src/a.go"))
	require.NoError(t, store.Append(ctx, testKey, `C:\repo\b.sh`))
	require.NoError(t, store.Append(ctx, testKey, "src/a.go"))

	data, err := os.ReadFile(filepath.Join(dir, CountFilePrefix+testKey))
	require.NoError(t, err)
	assert.Equal(t, "src/a.go\nC:\\repo\\b.sh\nsrc/a.go\n", string(data))

	paths, err := store.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.go", `C:\repo\b.sh`, "src/a.go"}, paths)

	info, err := os.Stat(filepath.Join(dir, CountFilePrefix+testKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_LoadSkipsBlankLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CountFilePrefix+testKey), []byte("a.go\n\n  \nb.go\n"), 0o600))

	paths, err := NewFileStore(dir).Load(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, paths)
}

func TestFileStore_CreatesStateDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewFileStore(dir)
	require.NoError(t, store.Append(context.Background(), testKey, "a.go"))

	_, err := os.Stat(filepath.Join(dir, CountFilePrefix+testKey))
	assert.NoError(t, err)
}

func TestFileStore_RejectsUnsafeKeysAndPaths(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	_, err := store.Load(ctx, "../escape")
	require.Error(t, err)

	require.Error(t, store.Append(ctx, "../escape", "a.go"))
	require.Error(t, store.Append(ctx, testKey, "two\nlines"))
}

func TestFileStore_UnreadableCounterIsAnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A directory where the counter file should be makes ReadFile fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, CountFilePrefix+testKey), 0o750))

	_, err := NewFileStore(dir).Load(context.Background(), testKey)
	require.Error(t, err)

	// The tracker absorbs the failure.
	res := NewTracker(NewFileStore(dir), DefaultReviewThreshold).Record(context.Background(), testKey, "a.go")
	assert.Equal(t, 1, res.Distinct)
}

func TestTracker_FileStoreEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	var due []bool
	for _, p := range []string{"A", "B", "B", "C", "D"} {
		// A fresh tracker per edit mirrors one process per hook invocation.
		tr := NewTracker(NewFileStore(dir), DefaultReviewThreshold)
		due = append(due, tr.Record(ctx, testKey, p).ReviewDue)
	}
	assert.Equal(t, []bool{false, false, false, true, false}, due)
}
