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
	"time"
)

// Status is the terminal status of a pipeline execution.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Stage names, in their fixed execution order.
const (
	StageSource  = "source"
	StageBuild   = "build"
	StagePublish = "publish"
	StageNotify  = "notify"
)

// StageResult is the output of one stage: an artifact reference plus
// pass/fail. Never mutated after creation.
type StageResult struct {
	Name       string    `json:"name"`
	Ok         bool      `json:"ok"`
	Artifact   string    `json:"artifact,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Execution is one run of the fixed Source→Build→Publish→Notify sequence.
// Mutated by the orchestrator as stages complete; immutable once terminal,
// except for the Notify stage record which arrives through the job report
// after the terminal status is set.
type Execution struct {
	Id          string        `json:"id"`
	PipelineId  string        `json:"pipelineId"`
	JobHandle   string        `json:"jobHandle"`
	TriggeredBy string        `json:"triggeredBy"`
	CommitSha   string        `json:"commitSha,omitempty"`
	Status      Status        `json:"status"`
	Stage       string        `json:"stage"`
	Stages      []StageResult `json:"stages"`
	CreatedAt   time.Time     `json:"createdAt"`
	FinishedAt  *time.Time    `json:"finishedAt,omitempty"`
}

// Terminal reports whether the execution reached a terminal status.
func (e *Execution) Terminal() bool {
	return e.Status == StatusSucceeded || e.Status == StatusFailed
}

// StageResultFor returns the recorded result for a stage, if any.
func (e *Execution) StageResultFor(stage string) (StageResult, bool) {
	for _, r := range e.Stages {
		if r.Name == stage {
			return r, true
		}
	}
	return StageResult{}, false
}

func (e *Execution) clone() *Execution {
	cp := *e
	cp.Stages = make([]StageResult, len(e.Stages))
	copy(cp.Stages, e.Stages)
	if e.FinishedAt != nil {
		t := *e.FinishedAt
		cp.FinishedAt = &t
	}
	return &cp
}
