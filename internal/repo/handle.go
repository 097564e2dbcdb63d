package repo

import (
	"fmt"
	"os"
	"strings"
)

// MessageSink is the pending commit message of a repository
type MessageSink interface {
	Text() (string, error)
	SetText(text string) error
}

// Handle ties a repository path to its message sink and remembers the
// trailer block last written into it.
type Handle struct {
	path     string
	sink     MessageSink
	previous string
}

// Path returns the repository path the handle was registered under
func (h *Handle) Path() string {
	return h.path
}

// Sink returns the repository's message sink
func (h *Handle) Sink() MessageSink {
	return h.sink
}

// Splice replaces the previously written trailer block with block. The
// first literal occurrence of the old block is removed and "\n\n"+block is
// appended; text outside the block is left untouched. If the old block was
// edited away the new one is still appended.
func (h *Handle) Splice(block string) error {
	text, err := h.sink.Text()
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}

	if h.previous != "" {
		text = strings.Replace(text, h.previous, "", 1)
	}
	written := "\n\n" + block

	if err := h.sink.SetText(text + written); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	h.previous = written
	return nil
}

// FileSink keeps the message in a file, typically inside the git directory
type FileSink struct {
	Path string
}

// Text returns the file content; a missing file reads as empty
func (s FileSink) Text() (string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetText replaces the file content
func (s FileSink) SetText(text string) error {
	return os.WriteFile(s.Path, []byte(text), 0644)
}
