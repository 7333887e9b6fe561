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

package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/forgegate/forgegate/internal/pkg/notifier"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// ErrNotFound is returned for unknown execution ids and job handles.
var ErrNotFound = errors.New("pipeline: execution not found")

// Store holds the execution history of this deployment in memory.
// Executions live and die with the deployment, like the gate they signal.
// Store is also the orchestrator-side endpoint of the job report protocol.
type Store struct {
	mu    sync.RWMutex
	byId  map[string]*Execution
	byJob map[string]string // job handle -> execution id
}

// NewStore creates an empty execution store.
func NewStore() *Store {
	return &Store{
		byId:  make(map[string]*Execution),
		byJob: make(map[string]string),
	}
}

// Create registers a new running execution with a fresh id and job handle.
func (s *Store) Create(pipelineId, triggeredBy, commitSha string) *Execution {
	id := xid.New().String()
	exec := &Execution{
		Id:          id,
		PipelineId:  pipelineId,
		JobHandle:   "job-" + id,
		TriggeredBy: triggeredBy,
		CommitSha:   commitSha,
		Status:      StatusRunning,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.byId[exec.Id] = exec
	s.byJob[exec.JobHandle] = exec.Id
	s.mu.Unlock()

	return exec.clone()
}

// Get returns a copy of an execution by id.
func (s *Store) Get(id string) (*Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exec, ok := s.byId[id]
	if !ok {
		return nil, ErrNotFound
	}
	return exec.clone(), nil
}

// BeginStage marks a stage as the execution's current stage.
func (s *Store) BeginStage(id, stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exec, ok := s.byId[id]
	if !ok || exec.Terminal() {
		return
	}
	exec.Stage = stage
}

// FinishStage appends a stage result.
func (s *Store) FinishStage(id string, result StageResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exec, ok := s.byId[id]
	if !ok {
		return
	}
	exec.Stages = append(exec.Stages, result)
}

// SetTerminal records the execution's terminal status. A terminal
// execution never changes status again.
func (s *Store) SetTerminal(id string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exec, ok := s.byId[id]
	if !ok || exec.Terminal() {
		return
	}
	now := time.Now()
	exec.Status = status
	exec.FinishedAt = &now
}

// ReportSuccess records a successful notify job for the execution owning
// the job handle. Implements the report protocol consumed by the bridge.
func (s *Store) ReportSuccess(_ context.Context, jobHandle string) error {
	return s.recordNotify(jobHandle, StageResult{
		Name:       StageNotify,
		Ok:         true,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	})
}

// ReportFailure records a failed notify job with its failure details.
func (s *Store) ReportFailure(_ context.Context, jobHandle string, details notifier.FailureDetails) error {
	return s.recordNotify(jobHandle, StageResult{
		Name:       StageNotify,
		Ok:         false,
		Error:      details.Type + ": " + details.Message,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	})
}

func (s *Store) recordNotify(jobHandle string, result StageResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byJob[jobHandle]
	if !ok {
		return errors.Wrapf(ErrNotFound, "job handle %s", jobHandle)
	}
	exec := s.byId[id]

	// The bridge is invoked at most once per execution; a second report
	// for the same handle is a duplicate and is dropped.
	if _, done := exec.StageResultFor(StageNotify); done {
		log.Warnw("duplicate notify report ignored", "jobHandle", jobHandle, "executionId", id)
		return nil
	}

	exec.Stages = append(exec.Stages, result)
	exec.Stage = StageNotify

	status := "succeeded"
	if !result.Ok {
		status = "failed"
	}
	metrics.StageCompleted.WithLabelValues(StageNotify, status).Inc()
	return nil
}
