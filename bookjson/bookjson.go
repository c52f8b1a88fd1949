// Package bookjson converts books to and from the JSON document
// {"title": "...", "author": "...", "pages": ["...", ...]}.
package bookjson

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/ByLCY/quire/book"
	"github.com/ByLCY/quire/format"
)

// ErrInvalidDocument is returned when the JSON does not describe a book.
var ErrInvalidDocument = errors.New("invalid book document")

// Document is the plain content of a book.
type Document struct {
	Title  string
	Author string
	Pages  []string
}

// FromBook exports the metadata and pages of b.
func FromBook(b *book.Book) Document {
	return Document{Title: b.Title, Author: b.Author, Pages: b.PageStrings()}
}

// ToBook builds a book from the document.
func (d Document) ToBook(box book.Box) *book.Book {
	return book.Load(box, d.Title, d.Author, d.Pages)
}

// Marshal encodes the document as indented JSON. Every string passes
// through p so that no truncated directive leaves the editor.
func Marshal(d Document, p format.Provider) ([]byte, error) {
	clean := func(s string) string {
		if p == nil {
			return s
		}
		return string(p.Sanitize([]rune(s)))
	}
	out := []byte(`{"pages":[]}`)
	var err error
	if out, err = sjson.SetBytes(out, "title", clean(d.Title)); err != nil {
		return nil, fmt.Errorf("set title: %w", err)
	}
	if out, err = sjson.SetBytes(out, "author", clean(d.Author)); err != nil {
		return nil, fmt.Errorf("set author: %w", err)
	}
	for i, page := range d.Pages {
		if out, err = sjson.SetBytes(out, "pages.-1", clean(page)); err != nil {
			return nil, fmt.Errorf("append page %d: %w", i, err)
		}
	}
	return pretty.Pretty(out), nil
}

// Unmarshal decodes a document. pages must be an array of strings; title and
// author are optional strings.
func Unmarshal(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Document{}, fmt.Errorf("%w: top level is not an object", ErrInvalidDocument)
	}

	var d Document
	for _, key := range []string{"title", "author"} {
		v := root.Get(key)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.String {
			return Document{}, fmt.Errorf("%w: %s is not a string", ErrInvalidDocument, key)
		}
		if key == "title" {
			d.Title = v.Str
		} else {
			d.Author = v.Str
		}
	}

	pages := root.Get("pages")
	if !pages.IsArray() {
		return Document{}, fmt.Errorf("%w: pages is not an array", ErrInvalidDocument)
	}
	var bad error
	pages.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			bad = fmt.Errorf("%w: page %d is not a string", ErrInvalidDocument, key.Int())
			return false
		}
		d.Pages = append(d.Pages, value.Str)
		return true
	})
	if bad != nil {
		return Document{}, bad
	}
	return d, nil
}
