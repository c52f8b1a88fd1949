package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	parserOptions = []participle.Option{
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	}

	documentParser = participle.MustBuild[Document](parserOptions...)
	scriptParser   = participle.MustBuild[Script](parserOptions...)
)

// Document is the root AST node of a book document:
//
//	title: "..."
//	author: "..."
//	page { "text" "more text" }
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Entries []*Entry       `parser:"( Newline | ';' )* ( @@ ( Newline | ';' )* )*"`
}

// Entry is either a page block or a metadata assignment.
type Entry struct {
	Page       *PageBlock  `parser:"  @@"`
	Assignment *Assignment `parser:"| @@"`
}

// Assignment uses colon syntax (key: "value").
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value StringLiteral  `parser:"':' Newline* @String"`
}

// PageBlock holds the string literals of one page; they are concatenated.
type PageBlock struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Texts []*TextLiteral `parser:"'page' Newline* '{' Newline* ( @@ ( Newline | ';' )* )* '}'"`
}

// TextLiteral encapsulates one string literal of a page.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Text joins the literals of the page.
func (p *PageBlock) Text() string {
	var b strings.Builder
	for _, t := range p.Texts {
		b.WriteString(string(t.Value))
	}
	return b.String()
}

// Script is a sequence of edit commands, one per line or separated by ';'.
type Script struct {
	Commands []*Command `parser:"( Newline | ';' )* ( @@ ( Newline | ';' )* )*"`
}

// Command is a named edit operation with positional arguments.
type Command struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"@Ident"`
	Args []*Arg         `parser:"@@*"`
}

// Arg is a string, integer or bare word argument.
type Arg struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Str  *StringLiteral `parser:"  @String"`
	Int  *int           `parser:"| @Int"`
	Word *string        `parser:"| @Ident"`
}

// String renders the argument the way it was written.
func (a *Arg) String() string {
	switch {
	case a == nil:
		return ""
	case a.Str != nil:
		return strconv.Quote(string(*a.Str))
	case a.Int != nil:
		return strconv.Itoa(*a.Int)
	case a.Word != nil:
		return *a.Word
	}
	return ""
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a book document from an io.Reader.
func Parse(name string, r io.Reader) (*Document, error) {
	return documentParser.Parse(name, r)
}

// ParseString parses a book document from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// ParseScript parses an edit script.
func ParseScript(name, input string) (*Script, error) {
	return scriptParser.ParseString(name, input)
}
