// Copyright 2026 Forgegate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gate

import (
	"context"
	"sync"
	"time"

	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
)

// State is the lifecycle state of a completion gate.
type State string

const (
	StateWaiting      State = "waiting"
	StateFiredSuccess State = "fired-success"
	StateFiredFailure State = "fired-failure"
	StateExpired      State = "expired"
)

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s != StateWaiting
}

// Failed reports whether the blocked caller should treat the state as a
// failure. Expiry reads as failure; it is only distinguished in diagnostics.
func (s State) Failed() bool {
	return s == StateFiredFailure || s == StateExpired
}

// Signal statuses accepted on the wire.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Signal is the payload delivered to a gate handle.
type Signal struct {
	Status   string `json:"Status"`
	Reason   string `json:"Reason"`
	UniqueId string `json:"UniqueId"`
	Data     string `json:"Data"`
}

// Valid reports whether the signal carries a recognized status.
func (s Signal) Valid() bool {
	return s.Status == StatusSuccess || s.Status == StatusFailure
}

// Outcome is what a blocked caller observes when the gate resolves.
type Outcome struct {
	State  State
	Signal *Signal
}

// Snapshot is the diagnostic view of a gate.
type Snapshot struct {
	Handle    string     `json:"handle"`
	State     State      `json:"state"`
	Timeout   string     `json:"timeout"`
	Signal    *Signal    `json:"signal,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	FiredAt   *time.Time `json:"firedAt,omitempty"`
}

// Gate is a single-fire, timeout-bounded synchronization primitive.
// The first valid signal wins; every later signal is an idempotent no-op.
// If no signal arrives within the timeout the gate expires to a failure
// state on its own.
type Gate struct {
	handle  string
	timeout time.Duration

	mu        sync.Mutex
	state     State
	signal    *Signal
	createdAt time.Time
	firedAt   *time.Time

	timer *time.Timer
	done  chan struct{}
}

// New creates a gate in the waiting state and arms its expiry timer.
func New(handle string, timeout time.Duration) *Gate {
	g := &Gate{
		handle:    handle,
		timeout:   timeout,
		state:     StateWaiting,
		createdAt: time.Now(),
		done:      make(chan struct{}),
	}
	g.timer = time.AfterFunc(timeout, g.expire)
	return g
}

// Handle returns the gate's opaque handle.
func (g *Gate) Handle() string {
	return g.handle
}

// Deliver applies a signal to the gate. It returns true when this signal is
// the one recorded; false means the gate was already terminal and the
// signal was ignored. Ignoring is not an error: duplicate Notify
// invocations from pipeline re-triggers land here.
func (g *Gate) Deliver(sig Signal) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateWaiting {
		log.Debugw("gate already resolved, signal ignored",
			"handle", g.handle, "state", g.state, "uniqueId", sig.UniqueId)
		return false
	}

	if g.timer != nil {
		g.timer.Stop()
	}

	now := time.Now()
	g.firedAt = &now
	recorded := sig
	g.signal = &recorded
	if sig.Status == StatusSuccess {
		g.state = StateFiredSuccess
	} else {
		g.state = StateFiredFailure
	}
	metrics.GateTransitions.WithLabelValues(string(g.state)).Inc()
	log.Infow("gate fired",
		"handle", g.handle, "state", g.state, "status", sig.Status,
		"reason", sig.Reason, "uniqueId", sig.UniqueId)

	close(g.done)
	return true
}

// expire resolves the gate to the expired state if it is still waiting.
func (g *Gate) expire() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateWaiting {
		return
	}

	now := time.Now()
	g.firedAt = &now
	g.state = StateExpired
	metrics.GateTransitions.WithLabelValues(string(StateExpired)).Inc()
	log.Warnw("gate expired without signal", "handle", g.handle, "timeout", g.timeout)

	close(g.done)
}

// Wait blocks until the gate leaves the waiting state or ctx is cancelled.
// The gate's own timeout bounds the wait; ctx only needs to cover caller
// cancellation.
func (g *Gate) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case <-g.done:
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return Outcome{State: g.state, Signal: g.signal}, nil
}

// Snapshot returns the diagnostic view of the gate.
func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Snapshot{
		Handle:    g.handle,
		State:     g.state,
		Timeout:   g.timeout.String(),
		Signal:    g.signal,
		CreatedAt: g.createdAt,
		FiredAt:   g.firedAt,
	}
}

// State returns the gate's current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
