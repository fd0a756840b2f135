package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/sub"

	// Register transports (tcp, ipc, inproc, ...)
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/dd0wney/cluso-diffusion/pkg/sim"
)

// Subscriber receives snapshots published by a Publisher.
type Subscriber struct {
	sock mangos.Socket
}

// NewSubscriber dials the publisher address and subscribes to the snapshot
// topic.
func NewSubscriber(addr string) (*Subscriber, error) {
	sock, err := sub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create SUB socket: %w", err)
	}
	if err := sock.Dial(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	if err := sock.SetOption(mangos.OptionSubscribe, snapshotTopic); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	return &Subscriber{sock: sock}, nil
}

// SetRecvDeadline bounds how long Next blocks waiting for a snapshot.
func (s *Subscriber) SetRecvDeadline(d time.Duration) error {
	return s.sock.SetOption(mangos.OptionRecvDeadline, d)
}

// Next blocks until the next snapshot arrives.
func (s *Subscriber) Next() (sim.Snapshot, error) {
	var snap sim.Snapshot

	msg, err := s.sock.Recv()
	if err != nil {
		return snap, fmt.Errorf("failed to receive snapshot: %w", err)
	}
	payload := bytes.TrimPrefix(msg, snapshotTopic)
	if err := json.Unmarshal(payload, &snap); err != nil {
		return snap, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// Close closes the underlying socket.
func (s *Subscriber) Close() error {
	return s.sock.Close()
}
