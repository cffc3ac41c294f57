package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const video = "dQw4w9WgXcQ"

// countingBackend records writes on top of a MemoryBackend.
type countingBackend struct {
	*MemoryBackend
	sets    int
	failGet error
	failSet error
}

func (c *countingBackend) Get(ctx context.Context, videoID string) ([]Note, bool, error) {
	if c.failGet != nil {
		return nil, false, c.failGet
	}
	return c.MemoryBackend.Get(ctx, videoID)
}

func (c *countingBackend) Set(ctx context.Context, videoID string, notes []Note) error {
	if c.failSet != nil {
		return c.failSet
	}
	c.sets++
	return c.MemoryBackend.Set(ctx, videoID, notes)
}

func newTestStore() (*Store, *countingBackend, *time.Time) {
	backend := &countingBackend{MemoryBackend: NewMemoryBackend()}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seq := 0
	store := NewStore(backend,
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("note-%d", seq)
		}),
	)
	return store, backend, &now
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()
	store, backend, _ := newTestStore()

	note, err := store.Add(ctx, video, Input{Title: "  Intro ", Content: " see [1:02:03] then [0:15] "})
	require.NoError(t, err)

	assert.Equal(t, "note-1", note.ID)
	assert.Equal(t, video, note.VideoID)
	assert.Equal(t, "Intro", note.Title)
	assert.Equal(t, "see [1:02:03] then [0:15]", note.Content)
	require.NotNil(t, note.Timestamp)
	assert.Equal(t, 3723, *note.Timestamp)
	assert.Equal(t, "01:02:03", note.TimestampText())
	assert.Nil(t, note.UpdatedAt)
	assert.Equal(t, 1, backend.sets)

	plain, err := store.Add(ctx, video, Input{Title: "Plain", Content: "no timecode [99]"})
	require.NoError(t, err)
	assert.False(t, plain.HasTimestamp())
	assert.Empty(t, plain.TimestampText())

	list, err := store.List(ctx, video)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "note-1", list[0].ID)
	assert.Equal(t, "note-2", list[1].ID)
}

func TestStore_AddValidation(t *testing.T) {
	ctx := context.Background()
	store, backend, _ := newTestStore()

	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"empty title", Input{Title: "", Content: "x"}, "title"},
		{"blank title", Input{Title: "   ", Content: "x"}, "title"},
		{"empty content", Input{Title: "x", Content: ""}, "content"},
		{"blank content", Input{Title: "x", Content: "\n\t "}, "content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Add(ctx, video, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Zero(t, backend.sets)
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	store, backend, now := newTestStore()

	note, err := store.Add(ctx, video, Input{Title: "A", Content: "at [0:15]"})
	require.NoError(t, err)

	*now = now.Add(time.Minute)
	ok, err := store.Update(ctx, video, note.ID, Input{Title: "B", Content: "no time now"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := store.Find(ctx, video, note.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "B", got.Title)
	assert.Nil(t, got.Timestamp)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, *now, *got.UpdatedAt)
	assert.Equal(t, note.CreatedAt, got.CreatedAt)

	sets := backend.sets
	ok, err = store.Update(ctx, video, "missing", Input{Title: "B", Content: "c"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, sets, backend.sets)

	_, err = store.Update(ctx, video, note.ID, Input{Title: "B", Content: " "})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore()

	a, _ := store.Add(ctx, video, Input{Title: "A", Content: "a"})
	b, _ := store.Add(ctx, video, Input{Title: "B", Content: "b"})
	c, _ := store.Add(ctx, video, Input{Title: "C", Content: "c"})

	ok, err := store.Delete(ctx, video, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := store.List(ctx, video)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	ok, err = store.Delete(ctx, video, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ClearAll(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore()

	ok, err := store.ClearAll(ctx, video)
	require.NoError(t, err)
	assert.True(t, ok, "clearing an empty collection still succeeds")

	_, _ = store.Add(ctx, video, Input{Title: "A", Content: "a"})
	_, _ = store.Add(ctx, "other000000", Input{Title: "B", Content: "b"})

	ok, err = store.ClearAll(ctx, video)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := store.List(ctx, video)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	videos, err := store.Videos(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other000000"}, videos)
}

func TestStore_BackendErrors(t *testing.T) {
	ctx := context.Background()
	store, backend, _ := newTestStore()
	boom := errors.New("disk full")

	backend.failSet = boom
	_, err := store.Add(ctx, video, Input{Title: "A", Content: "a"})
	assert.ErrorIs(t, err, boom)

	backend.failSet = nil
	backend.failGet = boom
	_, err = store.List(ctx, video)
	assert.ErrorIs(t, err, boom)
	_, err = store.Delete(ctx, video, "x")
	assert.ErrorIs(t, err, boom)
}

func TestStore_ExportText(t *testing.T) {
	ctx := context.Background()
	store, _, now := newTestStore()

	_, _ = store.Add(ctx, video, Input{Title: "Chorus", Content: "here [3:32]"})
	second, _ := store.Add(ctx, video, Input{Title: "Thoughts", Content: "general remark"})
	*now = now.Add(time.Hour)
	_, _ = store.Update(ctx, video, second.ID, Input{Title: "Thoughts", Content: "edited remark"})

	text, err := store.ExportText(ctx, video, "Never Gonna Give You Up")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Video Notes: Never Gonna Give You Up\n"))
	assert.Contains(t, text, "Video ID: "+video)
	assert.Contains(t, text, "Exported: 2024-03-01T13:00:00Z")
	assert.Contains(t, text, "Total Notes: 2")
	assert.Contains(t, text, "Timestamp: 03:32")
	assert.Contains(t, text, "Updated: 2024-03-01T13:00:00Z")
	assert.Equal(t, 1, strings.Count(text, "1. Chorus\n"))
	assert.Equal(t, 1, strings.Count(text, "2. Thoughts\n"))
	assert.Equal(t, 1, strings.Count(text, "edited remark"))
	assert.Less(t, strings.Index(text, "Chorus"), strings.Index(text, "Thoughts"))
}

func TestExportFilename(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "youtube-notes-dQw4w9WgXcQ-1700000000123.txt", ExportFilename(video, at))
}

func TestNewStore_DefaultIDs(t *testing.T) {
	store := NewStore(NewMemoryBackend())
	a, err := store.Add(context.Background(), video, Input{Title: "A", Content: "a"})
	require.NoError(t, err)
	b, err := store.Add(context.Background(), video, Input{Title: "B", Content: "b"})
	require.NoError(t, err)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}
