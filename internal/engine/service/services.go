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
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/internal/pkg/pipeline"
)

// Services bundles the engine's service layer for injection into routers.
type Services struct {
	Intake    *IntakeService
	Gate      *GateService
	Execution *ExecutionService
}

func NewServices(
	conf *pipeline.Conf,
	orchestrator *pipeline.Orchestrator,
	store *pipeline.Store,
	registry *gate.Registry,
) *Services {
	return &Services{
		Intake:    NewIntakeService(conf, orchestrator),
		Gate:      NewGateService(registry),
		Execution: NewExecutionService(store, orchestrator),
	}
}
