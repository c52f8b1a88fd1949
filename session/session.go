// Package session serializes edits to a single book.
//
// A Session owns its Book; every script, command and query runs under one
// mutex, so a book is never touched by two callers at once.
package session

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/ByLCY/quire/book"
	"github.com/ByLCY/quire/dsl"
)

var (
	// ErrUnknownCommand is returned for a script command with no handler.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBadArgument is returned when a command's arguments have the wrong shape.
	ErrBadArgument = errors.New("bad argument")
)

// PageSeparator joins page texts on the clipboard.
const PageSeparator = "\f"

// Session is the single writer of a Book.
type Session struct {
	mu     sync.Mutex
	book   *book.Book
	clip   Clipboard
	logger *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger traces every executed command to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClipboard replaces the default in-memory clipboard.
func WithClipboard(c Clipboard) Option {
	return func(s *Session) { s.clip = c }
}

// New wraps b. The session takes ownership: callers must not edit b directly.
func New(b *book.Book, opts ...Option) *Session {
	s := &Session{book: b, clip: &MemoryClipboard{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Do runs fn with exclusive access to the book.
func (s *Session) Do(fn func(b *book.Book)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.book)
}

// Snapshot captures the book state.
func (s *Session) Snapshot() *book.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Snapshot()
}

// Run parses and executes an edit script. Execution stops at the first
// failing command; commands before it stay applied.
func (s *Session) Run(name, script string) error {
	parsed, err := dsl.ParseScript(name, script)
	if err != nil {
		return fmt.Errorf("解析脚本 %s 失败: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cmd := range parsed.Commands {
		if err := s.exec(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes one parsed command.
func (s *Session) Exec(cmd *dsl.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exec(cmd)
}

func (s *Session) exec(cmd *dsl.Command) error {
	h, ok := handlers[strings.ToLower(cmd.Name)]
	if !ok {
		return fmt.Errorf("%s: %w %q", cmd.Pos, ErrUnknownCommand, cmd.Name)
	}
	if err := h(s, cmd); err != nil {
		return fmt.Errorf("%s: %s: %w", cmd.Pos, cmd.Name, err)
	}
	if s.logger != nil {
		c := s.book.Cursor()
		s.logger.Printf("%s%s -> page %d line %d char %d", cmd.Name, argList(cmd.Args), c.Page, c.Line, c.Pos)
	}
	return nil
}

func argList(args []*dsl.Arg) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	return b.String()
}
