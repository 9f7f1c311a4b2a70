package widget_test

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/wristwatch/display"
	"github.com/drake/wristwatch/widget"
)

// countingAllocator tracks every buffer handed out and given back.
type countingAllocator struct {
	allocs int
	frees  int
	live   map[*byte]bool
	fail   bool
}

func newCountingAllocator() *countingAllocator {
	return &countingAllocator{live: make(map[*byte]bool)}
}

func (a *countingAllocator) Alloc(n int) []byte {
	if a.fail {
		return nil
	}
	a.allocs++
	b := make([]byte, n, n+1) // never zero capacity, so &b[:1][0] is a stable key
	a.live[&b[:1][0]] = true
	return b
}

func (a *countingAllocator) Free(b []byte) {
	key := &b[:1][0]
	if !a.live[key] {
		panic("free of unknown or already freed buffer")
	}
	delete(a.live, key)
	a.frees++
}

func TestNoteHelloWorld(t *testing.T) {
	w, err := widget.NewNoteWidget([]byte("hello world"), 11)
	require.NoError(t, err)

	assert.Equal(t, "hello world", w.Text())
	assert.Equal(t, 11, w.Len())
	assert.Equal(t, uint(24), w.Height())
}

func TestNoteCopiesPrefix(t *testing.T) {
	src := []byte("hello world")
	w, err := widget.NewNoteWidget(src, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", w.Text())

	// The note owns its copy
	src[0] = 'J'
	assert.Equal(t, "hello", w.Text())
}

func TestNoteKeepsEmbeddedNUL(t *testing.T) {
	w, err := widget.NewNoteWidget([]byte("a\x00b"), 3)
	require.NoError(t, err)
	assert.Equal(t, "a\x00b", w.Text())
}

func TestNoteSizeOutOfRange(t *testing.T) {
	for _, size := range []int{-1, 12, 100} {
		w, err := widget.NewNoteWidget([]byte("hello world"), size)
		assert.ErrorIs(t, err, widget.ErrNoteSize, "size %d", size)
		assert.Nil(t, w)
	}
}

func TestNoteEmpty(t *testing.T) {
	w, err := widget.NewNoteWidget(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "", w.Text())
	assert.Equal(t, uint(24), w.Height())
}

func TestNoteReleasesOnce(t *testing.T) {
	alloc := newCountingAllocator()
	w, err := widget.NewNoteWidgetAlloc(alloc, []byte("groceries: milk"), 15)
	require.NoError(t, err)
	assert.Equal(t, 1, alloc.allocs)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Equal(t, 1, alloc.frees)
	assert.Empty(t, alloc.live)
}

func TestNoteReleasedWithoutRender(t *testing.T) {
	alloc := newCountingAllocator()
	for i := 0; i < 10; i++ {
		w, err := widget.NewNoteWidgetAlloc(alloc, []byte("note"), 4)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}
	assert.Equal(t, 10, alloc.allocs)
	assert.Equal(t, 10, alloc.frees)
}

func TestNoteAllocFailure(t *testing.T) {
	alloc := newCountingAllocator()
	alloc.fail = true

	w, err := widget.NewNoteWidgetAlloc(alloc, []byte("note"), 4)
	assert.ErrorIs(t, err, widget.ErrNoteAlloc)
	assert.Nil(t, w)
}

func TestNotePressOpensFullscreen(t *testing.T) {
	w, err := widget.NewNoteWidget([]byte("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, widget.Fullscreen, w.OnPress())
}

func TestNoteRender(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "hello world", "hello world"},
		{"multi line", "first\nsecond", "first..."},
		{"too long", strings.Repeat("z", 40), strings.Repeat("z", 14) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := widget.NewNoteWidget([]byte(tt.text), len(tt.text))
			require.NoError(t, err)

			r := display.NewRecorder(128, 128)
			w.Render(r, 50)

			assert.Equal(t, []string{tt.want}, r.Texts())
			band := image.Rect(0, 50, 128, 50+widget.NoteHeight)
			assert.True(t, r.Bounds().In(band), "drew %v outside %v", r.Bounds(), band)
		})
	}
}

func TestNoteRenderFullscreen(t *testing.T) {
	body := "Pick up the parcel from the front desk before six"
	w, err := widget.NewNoteWidget([]byte(body), len(body))
	require.NoError(t, err)

	r := display.NewRecorder(128, 128)
	w.RenderFullscreen(r, 0)

	texts := r.Texts()
	require.NotEmpty(t, texts)
	assert.Equal(t, body, strings.Join(texts, " "))
	assert.True(t, r.Bounds().In(image.Rect(0, 0, 128, 128)))
}

func TestNoteRenderAfterClose(t *testing.T) {
	w, err := widget.NewNoteWidget([]byte("gone"), 4)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := display.NewRecorder(128, 128)
	w.Render(r, 0)
	w.RenderFullscreen(r, 0)
	assert.Empty(t, r.Ops)
}
