//go:build !zmq
// +build !zmq

package dispatch

import (
	"bytes"
	"fmt"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pair"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"
)

// tagSeparator splits the tag prefix from the payload in a framed message.
const tagSeparator = 0x00

// MangosTransport is the default network transport: one pair socket per
// peer link. The coordinator listens on one address per worker; each
// worker dials its own address.
type MangosTransport struct {
	rank  int
	peers map[int]mangos.Socket
}

// ListenCoordinator creates the coordinator endpoint (rank 0). addrs maps
// worker rank to the address that worker will dial.
func ListenCoordinator(addrs map[int]string) (*MangosTransport, error) {
	if len(addrs) == 0 {
		return nil, ErrNoWorkers
	}
	t := &MangosTransport{rank: 0, peers: make(map[int]mangos.Socket, len(addrs))}
	for rank, addr := range addrs {
		sock, err := pair.NewSocket()
		if err != nil {
			t.Close()
			return nil, opError("ListenCoordinator", rank, err)
		}
		if err := sock.Listen(addr); err != nil {
			sock.Close()
			t.Close()
			return nil, opError("ListenCoordinator", rank, err)
		}
		t.peers[rank] = sock
	}
	return t, nil
}

// DialWorker creates a worker endpoint connected to the coordinator.
func DialWorker(addr string, rank int) (*MangosTransport, error) {
	sock, err := pair.NewSocket()
	if err != nil {
		return nil, opError("DialWorker", 0, err)
	}
	if err := sock.Dial(addr); err != nil {
		sock.Close()
		return nil, opError("DialWorker", 0, err)
	}
	return &MangosTransport{
		rank:  rank,
		peers: map[int]mangos.Socket{0: sock},
	}, nil
}

func (t *MangosTransport) socket(peer int) (mangos.Socket, error) {
	sock, ok := t.peers[peer]
	if !ok {
		return nil, opError("socket", peer, ErrTransport)
	}
	return sock, nil
}

// Send frames the payload as tag \x00 payload and ships it to the peer.
func (t *MangosTransport) Send(payload []byte, dest int, tag string) error {
	sock, err := t.socket(dest)
	if err != nil {
		return err
	}
	framed := make([]byte, 0, len(tag)+1+len(payload))
	framed = append(framed, tag...)
	framed = append(framed, tagSeparator)
	framed = append(framed, payload...)
	if err := sock.Send(framed); err != nil {
		return opError("Send", dest, err)
	}
	return nil
}

// Recv blocks for the next message from the peer. The protocol is strict
// request/response per link, so a tag mismatch is a protocol violation.
func (t *MangosTransport) Recv(source int, tag string) ([]byte, error) {
	sock, err := t.socket(source)
	if err != nil {
		return nil, err
	}
	framed, err := sock.Recv()
	if err != nil {
		return nil, opError("Recv", source, err)
	}
	sep := bytes.IndexByte(framed, tagSeparator)
	if sep < 0 {
		return nil, opError("Recv", source, ErrBadMessage)
	}
	if got := string(framed[:sep]); got != tag {
		return nil, opError("Recv", source, fmt.Errorf("%w: tag %q, want %q", ErrTransport, got, tag))
	}
	return framed[sep+1:], nil
}

// Close closes every peer socket.
func (t *MangosTransport) Close() error {
	var first error
	for _, sock := range t.peers {
		if err := sock.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
