package toast

import (
	"context"
	"fmt"
	"io"
	"sync"
)

const (
	Red        = "\033[31m"
	Green      = "\033[32m"
	Yellow     = "\033[33m"
	Blue       = "\033[34m"
	Gray       = "\033[90m"
	ResetColor = "\033[0m"
)

var typeColors = map[Type]string{
	TypeSuccess: Green,
	TypeError:   Red,
	TypeWarning: Yellow,
	TypeInfo:    Blue,
}

// Printer renders each newly shown toast once to a terminal.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	seen  map[string]struct{}
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color, seen: make(map[string]struct{})}
}

// Watch prints toasts from n until ctx is done. It blocks.
func (p *Printer) Watch(ctx context.Context, n *Notifier) {
	stream, cancel := n.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case list, ok := <-stream:
			if !ok {
				return
			}
			p.render(list)
		}
	}
}

// Flush prints the toasts of n not printed yet.
func (p *Printer) Flush(n *Notifier) {
	p.render(n.List())
}

func (p *Printer) render(list []Toast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range list {
		if _, ok := p.seen[t.ID]; ok {
			continue
		}
		p.seen[t.ID] = struct{}{}
		p.Print(t)
	}
}

// Print writes a single toast line.
func (p *Printer) Print(t Toast) {
	label := fmt.Sprintf("[%-7s]", t.Type)
	if p.color {
		color, ok := typeColors[t.Type]
		if !ok {
			color = Gray
		}
		label = color + label + ResetColor
	}
	fmt.Fprintf(p.w, "%s %s: %s\n", label, t.Title, t.Message)
}
