// Package feed streams adoption snapshots over an NNG PUB/SUB pair so
// external visualizers can watch a run in progress instead of waiting for
// the final series.
package feed

import (
	"encoding/json"
	"fmt"

	"go.nanomsg.org/mangos/v3/protocol/pub"

	// Register transports (tcp, ipc, inproc, ...)
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"go.nanomsg.org/mangos/v3"

	"github.com/dd0wney/cluso-diffusion/pkg/sim"
)

// snapshotTopic prefixes every published message so subscribers can filter.
var snapshotTopic = []byte("SNAP:")

// Publisher broadcasts snapshots on a PUB socket. Publishing is
// fire-and-forget: slow or absent subscribers never block the simulation.
type Publisher struct {
	sock mangos.Socket
}

// NewPublisher creates a publisher listening on the given address, e.g.
// "tcp://127.0.0.1:9290" or "inproc://diffusion-feed".
func NewPublisher(addr string) (*Publisher, error) {
	sock, err := pub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create PUB socket: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to bind PUB socket to %s: %w", addr, err)
	}
	return &Publisher{sock: sock}, nil
}

// Publish broadcasts one snapshot as topic-prefixed JSON.
func (p *Publisher) Publish(snap sim.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	msg := make([]byte, 0, len(snapshotTopic)+len(payload))
	msg = append(msg, snapshotTopic...)
	msg = append(msg, payload...)
	if err := p.sock.Send(msg); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// Observer returns a recorder observer that publishes every appended
// snapshot, dropping send errors: the feed is best-effort by design.
func (p *Publisher) Observer() func(sim.Snapshot) {
	return func(snap sim.Snapshot) {
		_ = p.Publish(snap)
	}
}

// Close closes the underlying socket.
func (p *Publisher) Close() error {
	return p.sock.Close()
}
