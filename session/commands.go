package session

import (
	"fmt"
	"strings"

	"github.com/ByLCY/quire/book"
	"github.com/ByLCY/quire/dsl"
)

type handler func(s *Session, cmd *dsl.Command) error

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"insert":    insertCmd(false),
		"type":      insertCmd(true),
		"delete":    removeCmd(true),
		"backspace": removeCmd(false),
		"move":      moveCmd,
		"turn":      turnCmd,
		"cursor":    cursorCmd,
		"remove":    rangeCmd,
		"cut":       cutCmd,
		"copy":      copyCmd,
		"paste":     pasteCmd,
		"clear":     clearCmd,
	}
}

var directions = map[string]book.Direction{
	"up":    book.Up,
	"down":  book.Down,
	"left":  book.Left,
	"right": book.Right,
}

func insertCmd(moveAfter bool) handler {
	return func(s *Session, cmd *dsl.Command) error {
		if err := arity(cmd, 1, 1); err != nil {
			return err
		}
		text, err := stringArg(cmd, 0)
		if err != nil {
			return err
		}
		c := s.book.Cursor()
		s.book.InsertText(c.Page, c.Line, c.Pos, text, moveAfter)
		return nil
	}
}

func removeCmd(forward bool) handler {
	return func(s *Session, cmd *dsl.Command) error {
		if err := arity(cmd, 0, 1); err != nil {
			return err
		}
		n, err := countArg(cmd, 0)
		if err != nil {
			return err
		}
		for range n {
			s.book.RemoveChar(forward)
		}
		return nil
	}
}

func moveCmd(s *Session, cmd *dsl.Command) error {
	if err := arity(cmd, 1, 2); err != nil {
		return err
	}
	word, err := wordArg(cmd, 0)
	if err != nil {
		return err
	}
	dir, ok := directions[strings.ToLower(word)]
	if !ok {
		return fmt.Errorf("%w: direction %q", ErrBadArgument, word)
	}
	n, err := countArg(cmd, 1)
	if err != nil {
		return err
	}
	for range n {
		s.book.MoveCursor(dir)
	}
	return nil
}

func turnCmd(s *Session, cmd *dsl.Command) error {
	v, err := intArgs(cmd, 1)
	if err != nil {
		return err
	}
	s.book.TurnPage(v[0])
	return nil
}

func cursorCmd(s *Session, cmd *dsl.Command) error {
	v, err := intArgs(cmd, 3)
	if err != nil {
		return err
	}
	s.book.SetCursor(v[0], v[1], v[2])
	return nil
}

func rangeCmd(s *Session, cmd *dsl.Command) error {
	v, err := intArgs(cmd, 6)
	if err != nil {
		return err
	}
	s.book.RemoveRange(v[0], v[1], v[2], v[3], v[4], v[5])
	return nil
}

func cutCmd(s *Session, cmd *dsl.Command) error {
	v, err := intArgs(cmd, 2)
	if err != nil {
		return err
	}
	// The clipboard is written before any page is removed.
	texts := s.book.CopyPages(v[0], v[1])
	if err := s.clip.Write(strings.Join(texts, PageSeparator)); err != nil {
		return err
	}
	s.book.CutPages(v[0], v[1])
	return nil
}

func copyCmd(s *Session, cmd *dsl.Command) error {
	v, err := intArgs(cmd, 2)
	if err != nil {
		return err
	}
	texts := s.book.CopyPages(v[0], v[1])
	return s.clip.Write(strings.Join(texts, PageSeparator))
}

func pasteCmd(s *Session, cmd *dsl.Command) error {
	v, err := intArgs(cmd, 1)
	if err != nil {
		return err
	}
	text, err := s.clip.Read()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	s.book.InsertPages(v[0], strings.Split(text, PageSeparator))
	return nil
}

func clearCmd(s *Session, cmd *dsl.Command) error {
	if err := arity(cmd, 0, 0); err != nil {
		return err
	}
	s.book.Clear()
	return nil
}

func arity(cmd *dsl.Command, lo, hi int) error {
	if n := len(cmd.Args); n < lo || n > hi {
		if lo == hi {
			return fmt.Errorf("%w: want %d arguments, got %d", ErrBadArgument, lo, n)
		}
		return fmt.Errorf("%w: want %d to %d arguments, got %d", ErrBadArgument, lo, hi, n)
	}
	return nil
}

func stringArg(cmd *dsl.Command, i int) (string, error) {
	a := cmd.Args[i]
	if a.Str == nil {
		return "", fmt.Errorf("%w: argument %d must be a string, got %s", ErrBadArgument, i+1, a)
	}
	return string(*a.Str), nil
}

func wordArg(cmd *dsl.Command, i int) (string, error) {
	a := cmd.Args[i]
	if a.Word == nil {
		return "", fmt.Errorf("%w: argument %d must be a word, got %s", ErrBadArgument, i+1, a)
	}
	return *a.Word, nil
}

func intArgs(cmd *dsl.Command, n int) ([]int, error) {
	if err := arity(cmd, n, n); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i, a := range cmd.Args {
		if a.Int == nil {
			return nil, fmt.Errorf("%w: argument %d must be an integer, got %s", ErrBadArgument, i+1, a)
		}
		out[i] = *a.Int
	}
	return out, nil
}

// countArg reads an optional repeat count at i, defaulting to 1.
func countArg(cmd *dsl.Command, i int) (int, error) {
	if i >= len(cmd.Args) {
		return 1, nil
	}
	a := cmd.Args[i]
	if a.Int == nil || *a.Int < 0 {
		return 0, fmt.Errorf("%w: count must be a non-negative integer, got %s", ErrBadArgument, a)
	}
	return *a.Int, nil
}
