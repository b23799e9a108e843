package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/snippets"
)

var ErrNoSnippet = errors.New("no snippet for effect")

type Mode string

const (
	ModeDefault Mode = "default"
	ModeTmux    Mode = "tmux"
	ModeScreen  Mode = "screen"
)

// Clipboard writes to the terminal clipboard with an OSC 52 escape sequence.
type Clipboard struct {
	w    io.Writer
	mode Mode
}

func NewClipboard(w io.Writer, mode Mode) *Clipboard {
	return &Clipboard{w: w, mode: mode}
}

func (c *Clipboard) Copy(text string) error {
	seq := osc52.New(text)
	switch c.mode {
	case ModeTmux:
		seq = seq.Tmux()
	case ModeScreen:
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.w); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// CopyEffect copies the bundled reference snippet of id.
func (c *Clipboard) CopyEffect(id effect.ID) error {
	s, ok := snippets.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSnippet, id)
	}
	return c.Copy(s.Bundle())
}

const (
	LabelIdle   = "Copy All"
	LabelCopied = "Copied!"
	LabelFailed = "Failed"

	CopiedFor = 2 * time.Second
)

// Button is the one-shot status shown after a copy attempt. A success reverts
// to the idle label after CopiedFor; a failure stays until the next attempt.
type Button struct {
	label string
	until time.Time
}

func (b *Button) Record(err error, now time.Time) {
	if err != nil {
		b.label, b.until = LabelFailed, time.Time{}
		return
	}
	b.label, b.until = LabelCopied, now.Add(CopiedFor)
}

func (b *Button) Label(now time.Time) string {
	switch {
	case b.label == LabelFailed:
		return LabelFailed
	case b.label == LabelCopied && now.Before(b.until):
		return LabelCopied
	}
	return LabelIdle
}
