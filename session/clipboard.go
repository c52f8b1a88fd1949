package session

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard stores the text of cut or copied pages.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// MemoryClipboard keeps the text in process.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) Read() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *MemoryClipboard) Write(text string) error {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	return nil
}

// SystemClipboard uses the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Read() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) Write(text string) error { return clipboard.WriteAll(text) }

// SystemAvailable reports whether the desktop clipboard can be used.
func SystemAvailable() bool { return !clipboard.Unsupported }
