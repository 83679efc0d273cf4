package controller

import "sync"

const (
	EventResult = "result"
	EventReveal = "reveal"
	EventStatus = "status"
	EventError  = "error"
)

// Event is pushed to every subscriber. Zone and Slot are only meaningful
// for reveal events and are always encoded, including index 0.
type Event struct {
	Type       string `json:"type"`
	Generation uint64 `json:"generation"`
	Zone       int    `json:"zone"`
	Slot       int    `json:"slot"`
	Connected  bool   `json:"connected"`
	Loading    bool   `json:"loading"`
	Error      string `json:"error,omitempty"`
}

type hub struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[chan Event]struct{})}
}

func (h *hub) subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// broadcast never blocks; a subscriber with a full buffer misses the event.
func (h *hub) broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}
