// Package resize re-renders a pipeline view whenever its width changes.
package resize

// Source delivers width changes to subscribed listeners.
type Source interface {
	Subscribe(fn func(width int)) *Handle
}

// Handle identifies one subscription. Cancel is idempotent.
type Handle struct {
	cancel func()
}

// Cancel removes the subscription.
func (h *Handle) Cancel() {
	if h == nil || h.cancel == nil {
		return
	}
	h.cancel()
	h.cancel = nil
}

// Hub is an in-process Source fed by whatever observes the viewport, such as
// bubbletea window size messages. It is not safe for concurrent use.
type Hub struct {
	listeners []*listener
}

type listener struct {
	fn     func(int)
	active bool
}

// NewHub creates a Hub with no listeners.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers fn and returns its handle.
func (h *Hub) Subscribe(fn func(width int)) *Handle {
	l := &listener{fn: fn, active: true}
	h.listeners = append(h.listeners, l)
	return &Handle{cancel: func() { h.remove(l) }}
}

func (h *Hub) remove(l *listener) {
	l.active = false
	for i, cur := range h.listeners {
		if cur == l {
			h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
			return
		}
	}
}

// Notify calls every listener with width, in subscription order. Listeners
// subscribed during the call are not notified; listeners cancelled during
// the call are skipped.
func (h *Hub) Notify(width int) {
	snapshot := append([]*listener(nil), h.listeners...)
	for _, l := range snapshot {
		if l.active {
			l.fn(width)
		}
	}
}

// Len returns the number of active listeners.
func (h *Hub) Len() int {
	return len(h.listeners)
}
