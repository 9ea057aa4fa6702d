//go:build zmq
// +build zmq

package dispatch

import (
	"bytes"
	"fmt"

	zmq "github.com/pebbe/zmq4"
)

// tagSeparator splits the tag prefix from the payload in a framed message.
const tagSeparator = 0x00

// MangosTransport is replaced by a ZeroMQ implementation under the zmq
// build tag. The shape is identical: one PAIR socket per peer link,
// coordinator binds, workers connect.
type MangosTransport struct {
	rank  int
	peers map[int]*zmq.Socket
}

// ListenCoordinator creates the coordinator endpoint (rank 0). addrs maps
// worker rank to the address that worker will connect to.
func ListenCoordinator(addrs map[int]string) (*MangosTransport, error) {
	if len(addrs) == 0 {
		return nil, ErrNoWorkers
	}
	t := &MangosTransport{rank: 0, peers: make(map[int]*zmq.Socket, len(addrs))}
	for rank, addr := range addrs {
		sock, err := zmq.NewSocket(zmq.PAIR)
		if err != nil {
			t.Close()
			return nil, opError("ListenCoordinator", rank, err)
		}
		if err := sock.Bind(addr); err != nil {
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
	sock, err := zmq.NewSocket(zmq.PAIR)
	if err != nil {
		return nil, opError("DialWorker", 0, err)
	}
	if err := sock.Connect(addr); err != nil {
		sock.Close()
		return nil, opError("DialWorker", 0, err)
	}
	return &MangosTransport{
		rank:  rank,
		peers: map[int]*zmq.Socket{0: sock},
	}, nil
}

func (t *MangosTransport) socket(peer int) (*zmq.Socket, error) {
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
	if _, err := sock.SendBytes(framed, 0); err != nil {
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
	framed, err := sock.RecvBytes(0)
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
