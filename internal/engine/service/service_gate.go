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

package service

import (
	"github.com/bytedance/sonic"
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/pkg/errors"
)

// ErrBadSignal means a signal body failed to parse or validate.
var ErrBadSignal = errors.New("gate: invalid signal")

// GateService handles inbound gate signals and diagnostics reads.
type GateService struct {
	registry *gate.Registry
}

func NewGateService(registry *gate.Registry) *GateService {
	return &GateService{registry: registry}
}

// Deliver parses a raw signal body and applies it to the gate identified
// by handle. Senders routinely omit or blank the Content-Type, so the
// body is decoded as JSON unconditionally. Delivery to a terminal gate
// succeeds without changing anything.
func (gs *GateService) Deliver(handle string, body []byte) error {
	g, err := gs.registry.Get(handle)
	if err != nil {
		return err
	}

	var sig gate.Signal
	if err := sonic.Unmarshal(body, &sig); err != nil {
		return errors.Wrap(ErrBadSignal, err.Error())
	}
	if !sig.Valid() {
		return errors.Wrapf(ErrBadSignal, "unrecognized status %q", sig.Status)
	}

	applied := g.Deliver(sig)
	if !applied {
		log.Infow("signal after terminal state ignored",
			"handle", handle, "uniqueId", sig.UniqueId, "state", g.State())
	}
	return nil
}

// Snapshot returns the diagnostic view of a gate.
func (gs *GateService) Snapshot(handle string) (gate.Snapshot, error) {
	g, err := gs.registry.Get(handle)
	if err != nil {
		return gate.Snapshot{}, err
	}
	return g.Snapshot(), nil
}
