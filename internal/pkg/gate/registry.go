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
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// ErrUnknownHandle is returned for handles that identify no gate.
var ErrUnknownHandle = errors.New("gate: unknown handle")

// Conf holds gate provisioning configuration.
type Conf struct {
	// Timeout is the gate expiry in seconds. Required.
	Timeout int `mapstructure:"timeout"`
	// SignalBaseURL is the externally reachable base URL signals are
	// PUT against, e.g. "http://127.0.0.1:8080".
	SignalBaseURL string `mapstructure:"signalBaseUrl"`
}

func (c *Conf) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 3600
	}
	if c.SignalBaseURL == "" {
		c.SignalBaseURL = "http://127.0.0.1:8080"
	}
}

func (c *Conf) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("gate: timeout is required")
	}
	return nil
}

// TimeoutDuration returns the configured timeout as a duration.
func (c *Conf) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Registry owns the live gates of this deployment, keyed by handle.
type Registry struct {
	mu    sync.RWMutex
	gates map[string]*Gate
}

// NewRegistry creates an empty gate registry.
func NewRegistry() *Registry {
	return &Registry{gates: make(map[string]*Gate)}
}

// newHandle generates an opaque, unguessable gate handle.
func newHandle() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + xid.New().String()
}

// Create provisions a new gate with a generated handle.
func (r *Registry) Create(timeout time.Duration) *Gate {
	g := New(newHandle(), timeout)

	r.mu.Lock()
	r.gates[g.Handle()] = g
	r.mu.Unlock()

	return g
}

// Get returns the gate for a handle.
func (r *Registry) Get(handle string) (*Gate, error) {
	r.mu.RLock()
	g, ok := r.gates[handle]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownHandle
	}
	return g, nil
}

// Remove drops a gate from the registry. Gates live for the deployment;
// removal only happens when the deployment is torn down.
func (r *Registry) Remove(handle string) {
	r.mu.Lock()
	delete(r.gates, handle)
	r.mu.Unlock()
}
