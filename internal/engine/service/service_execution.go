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
	"net/url"

	"github.com/forgegate/forgegate/internal/pkg/pipeline"
)

// ExecutionService starts executions manually and answers status reads.
type ExecutionService struct {
	store        *pipeline.Store
	orchestrator *pipeline.Orchestrator
}

func NewExecutionService(store *pipeline.Store, orchestrator *pipeline.Orchestrator) *ExecutionService {
	return &ExecutionService{
		store:        store,
		orchestrator: orchestrator,
	}
}

// Start kicks off a manual execution of the configured pipeline. It
// builds the head of the watched branch; no commit pinning.
func (es *ExecutionService) Start(pipelineId, actor string) (*pipeline.Execution, error) {
	decoded, err := url.PathUnescape(pipelineId)
	if err != nil || decoded != es.orchestrator.PipelineId() {
		return nil, ErrUnknownPipeline
	}
	return es.orchestrator.Start(pipeline.Trigger{
		Kind:  "manual",
		Actor: actor,
	}), nil
}

// Get returns an execution by id.
func (es *ExecutionService) Get(id string) (*pipeline.Execution, error) {
	return es.store.Get(id)
}
