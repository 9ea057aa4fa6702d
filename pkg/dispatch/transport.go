package dispatch

import (
	"sync"
)

// Transport moves opaque payloads between the coordinator (peer 0) and
// workers (peers 1..n). Send and Recv are blocking point-to-point
// operations with no timeout; a failure is fatal to the run.
type Transport interface {
	// Send delivers payload to the given peer under a tag.
	Send(payload []byte, dest int, tag string) error
	// Recv blocks until a payload tagged tag arrives from the given peer.
	Recv(source int, tag string) ([]byte, error)
	// Close releases the endpoint.
	Close() error
}

// route identifies one directed, tagged channel between two peers.
type route struct {
	from, to int
	tag      string
}

// ChannelHub is an in-memory transport fabric for single-process
// distributed runs and tests. Every peer gets an endpoint; payloads flow
// through per-route buffered channels.
type ChannelHub struct {
	mu     sync.Mutex
	chans  map[route]chan []byte
	closed bool
}

// NewChannelHub creates an empty hub.
func NewChannelHub() *ChannelHub {
	return &ChannelHub{
		chans: make(map[route]chan []byte),
	}
}

func (h *ChannelHub) channel(r route) chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.chans[r]
	if !ok {
		ch = make(chan []byte, 64)
		h.chans[r] = ch
	}
	return ch
}

// Endpoint returns the transport endpoint for the given peer rank.
func (h *ChannelHub) Endpoint(rank int) Transport {
	return &channelTransport{hub: h, rank: rank}
}

type channelTransport struct {
	hub  *ChannelHub
	rank int
}

func (t *channelTransport) Send(payload []byte, dest int, tag string) error {
	t.hub.mu.Lock()
	closed := t.hub.closed
	t.hub.mu.Unlock()
	if closed {
		return opError("Send", dest, ErrClosed)
	}
	t.hub.channel(route{from: t.rank, to: dest, tag: tag}) <- payload
	return nil
}

func (t *channelTransport) Recv(source int, tag string) ([]byte, error) {
	payload, ok := <-t.hub.channel(route{from: source, to: t.rank, tag: tag})
	if !ok {
		return nil, opError("Recv", source, ErrClosed)
	}
	return payload, nil
}

func (t *channelTransport) Close() error {
	return nil
}

// Shutdown closes the hub. Pending receivers observe ErrClosed.
func (h *ChannelHub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, ch := range h.chans {
		close(ch)
	}
}
