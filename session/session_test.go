package session

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/quire/book"
	"github.com/ByLCY/quire/format"
	"github.com/ByLCY/quire/metrics"
)

func testBox() book.Box {
	return book.Box{Provider: format.Legacy{}, Metrics: metrics.Fixed(6), Width: 116}
}

func text(s *Session) string {
	var out string
	s.Do(func(b *book.Book) { out = b.Text() })
	return out
}

func pages(s *Session) []string {
	var out []string
	s.Do(func(b *book.Book) { out = b.PageStrings() })
	return out
}

func TestRunEditsText(t *testing.T) {
	s := New(book.New(testBox()))
	require.NoError(t, s.Run("script", `type "Hello"; insert " World"; backspace 2`))
	assert.Equal(t, "Hel World", text(s))
	assert.Equal(t, book.Cursor{Page: 0, Line: 0, Pos: 3}, s.Snapshot().Cursor)

	require.NoError(t, s.Run("script", "delete\nclear"))
	assert.Equal(t, "", text(s))
}

func TestRunMovesCursor(t *testing.T) {
	s := New(book.Load(testBox(), "", "", []string{"Hello"}))
	require.NoError(t, s.Run("move", "move right 3\nmove left"))
	assert.Equal(t, 2, s.Snapshot().Cursor.Pos)

	require.NoError(t, s.Run("cursor", "cursor 0 0 99"))
	assert.Equal(t, 5, s.Snapshot().Cursor.Pos)

	require.NoError(t, s.Run("remove", "remove 0 0 1 0 0 4"))
	assert.Equal(t, "Ho", text(s))
}

func TestCopyPaste(t *testing.T) {
	s := New(book.Load(testBox(), "", "", []string{"one", "two"}))
	require.NoError(t, s.Run("clip", "copy 0 0\npaste 2"))
	assert.Equal(t, []string{"one", "two", "one"}, pages(s))
	assert.Equal(t, 2, s.Snapshot().Cursor.Page)
}

func TestCutJoinsPagesOnClipboard(t *testing.T) {
	clip := &MemoryClipboard{}
	s := New(book.Load(testBox(), "", "", []string{"one", "two", "three"}), WithClipboard(clip))
	require.NoError(t, s.Run("clip", "cut 0 1"))
	assert.Equal(t, []string{"three"}, pages(s))

	got, err := clip.Read()
	require.NoError(t, err)
	assert.Equal(t, "one"+PageSeparator+"two", got)
}

func TestPasteEmptyClipboardIsNoop(t *testing.T) {
	s := New(book.Load(testBox(), "", "", []string{"one"}))
	require.NoError(t, s.Run("clip", "paste 0"))
	assert.Equal(t, []string{"one"}, pages(s))
}

type brokenClipboard struct{}

func (brokenClipboard) Read() (string, error) { return "", errors.New("no clipboard") }
func (brokenClipboard) Write(string) error    { return errors.New("no clipboard") }

func TestCutKeepsPagesWhenClipboardFails(t *testing.T) {
	s := New(book.Load(testBox(), "", "", []string{"one", "two"}), WithClipboard(brokenClipboard{}))
	assert.Error(t, s.Run("clip", "cut 0 0"))
	assert.Equal(t, []string{"one", "two"}, pages(s))
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   error
	}{
		{"unknown command", "jump 3", ErrUnknownCommand},
		{"bad direction", "move sideways", ErrBadArgument},
		{"string expected", "insert 5", ErrBadArgument},
		{"too few ints", "cursor 0 0", ErrBadArgument},
		{"negative count", "delete -1", ErrBadArgument},
		{"clear takes nothing", "clear now", ErrBadArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(book.New(testBox()))
			err := s.Run("script", tt.script)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), "script:1:1")
		})
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	s := New(book.New(testBox()))
	err := s.Run("script", "type \"a\"\nfrob\ntype \"b\"")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script:2:1")
	assert.Equal(t, "a", text(s))
}

func TestParseErrorIsNotACommandError(t *testing.T) {
	s := New(book.New(testBox()))
	err := s.Run("script", `type "open`)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownCommand))
}

func TestLoggerTracesCommands(t *testing.T) {
	var buf bytes.Buffer
	s := New(book.New(testBox()), WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, s.Run("script", `type "Hi"`))
	assert.Equal(t, "type \"Hi\" -> page 0 line 0 char 2\n", buf.String())
}

func TestConcurrentRunsAreSerialized(t *testing.T) {
	s := New(book.New(testBox()))
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Run("script", `type "a"`))
		}()
	}
	wg.Wait()
	assert.Equal(t, strings.Repeat("a", 50), text(s))
}
