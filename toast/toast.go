// Package toast keeps the ordered list of transient user notifications.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultDuration is used when a toast is shown without a duration.
const DefaultDuration = 5 * time.Second

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Toast is a single notification. A negative Duration disables auto-removal.
type Toast struct {
	ID       string        `json:"id"`
	Type     Type          `json:"type"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// Notifier is the process-wide toast queue. Safe for concurrent use.
type Notifier struct {
	mu              sync.Mutex
	toasts          []Toast
	timers          map[string]*time.Timer
	subscribers     map[int]chan []Toast
	nextSubscriber  int
	defaultDuration time.Duration
	afterFunc       func(d time.Duration, f func()) *time.Timer
}

type Option func(*Notifier)

// WithDefaultDuration overrides DefaultDuration.
func WithDefaultDuration(d time.Duration) Option {
	return func(n *Notifier) {
		if d != 0 {
			n.defaultDuration = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc (primarily for testing).
func WithAfterFunc(f func(d time.Duration, fn func()) *time.Timer) Option {
	return func(n *Notifier) {
		n.afterFunc = f
	}
}

func New(options ...Option) *Notifier {
	n := &Notifier{
		timers:          make(map[string]*time.Timer),
		subscribers:     make(map[int]chan []Toast),
		defaultDuration: DefaultDuration,
		afterFunc:       time.AfterFunc,
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

// Show appends t to the list and schedules its removal. It returns the stored toast.
func (n *Notifier) Show(t Toast) Toast {
	t.ID = uuid.New().String()
	if t.Duration == 0 {
		t.Duration = n.defaultDuration
	}
	logToast(t)

	n.mu.Lock()
	n.toasts = append(n.toasts, t)
	if t.Duration > 0 {
		id := t.ID
		n.timers[id] = n.afterFunc(t.Duration, func() { n.Remove(id) })
	}
	n.publishLocked()
	n.mu.Unlock()
	return t
}

func (n *Notifier) ShowSuccess(title, message string) {
	n.Show(Toast{Type: TypeSuccess, Title: title, Message: message})
}

func (n *Notifier) ShowError(title, message string) {
	n.Show(Toast{Type: TypeError, Title: title, Message: message})
}

func (n *Notifier) ShowWarning(title, message string) {
	n.Show(Toast{Type: TypeWarning, Title: title, Message: message})
}

func (n *Notifier) ShowInfo(title, message string) {
	n.Show(Toast{Type: TypeInfo, Title: title, Message: message})
}

// Remove deletes the toast with the given id. Unknown ids are ignored.
func (n *Notifier) Remove(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}
	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i:i], n.toasts[i+1:]...)
			n.publishLocked()
			return
		}
	}
}

// ClearAll empties the list and stops every pending removal.
func (n *Notifier) ClearAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	n.toasts = nil
	n.publishLocked()
}

// List returns a snapshot of the current toasts in insertion order.
func (n *Notifier) List() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

// Subscribe returns a stream of list snapshots, starting with the current one.
// Only the latest snapshot is buffered for a slow reader.
func (n *Notifier) Subscribe() (<-chan []Toast, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextSubscriber
	n.nextSubscriber++
	ch := make(chan []Toast, 1)
	ch <- n.snapshotLocked()
	n.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subscribers, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (n *Notifier) snapshotLocked() []Toast {
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

func (n *Notifier) publishLocked() {
	for _, ch := range n.subscribers {
		snapshot := n.snapshotLocked()
		select {
		case ch <- snapshot:
		default:
			// drop the stale snapshot, keep the newest
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func logToast(t Toast) {
	var event *zerolog.Event
	switch t.Type {
	case TypeError:
		event = log.Error()
	case TypeWarning:
		event = log.Warn()
	default:
		event = log.Info()
	}
	event.Str("toast_type", string(t.Type)).Str("title", t.Title).Msg(t.Message)
}
