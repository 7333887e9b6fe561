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
	"os"
	"path/filepath"
	"time"

	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/internal/pkg/notifier"
	"github.com/forgegate/forgegate/internal/pkg/runner"
	"github.com/forgegate/forgegate/internal/pkg/storage"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
	"github.com/forgegate/forgegate/pkg/safe"
	"github.com/pkg/errors"
)

// Reason strings carried on gate signals.
const (
	ReasonBuildSucceeded = "Build Succeeded"
	ReasonSourceFailed   = "Source Checkout Failed"
	ReasonBuildFailed    = "Compilation Failed"
	ReasonPublishFailed  = "Artifact Publish Failed"
)

// Conf is the pipeline configuration surface. Repo coordinates, the
// shared secret, the artifact pattern and the build command are
// required; everything else has a default. Credentials are optional
// for public repositories.
type Conf struct {
	RepoOwner           string `mapstructure:"repoOwner"`
	RepoName            string `mapstructure:"repoName"`
	Branch              string `mapstructure:"branch"`
	SharedSecret        string `mapstructure:"sharedSecret"`
	ArtifactNamePattern string `mapstructure:"artifactNamePattern"`
	BuildCommand        string `mapstructure:"buildCommand"`
	RepoBaseURL         string `mapstructure:"repoBaseUrl"`
	RepoUsername        string `mapstructure:"repoUsername"`
	RepoToken           string `mapstructure:"repoToken"`
	WorkDir             string `mapstructure:"workDir"`
	PublishPrefix       string `mapstructure:"publishPrefix"`
}

func (c *Conf) SetDefaults() {
	if c.Branch == "" {
		c.Branch = "master"
	}
	if c.RepoBaseURL == "" {
		c.RepoBaseURL = "https://github.com"
	}
	if c.WorkDir == "" {
		c.WorkDir = filepath.Join(os.TempDir(), "forgegate")
	}
	if c.PublishPrefix == "" {
		c.PublishPrefix = "artifacts"
	}
}

func (c *Conf) Validate() error {
	if c.RepoOwner == "" {
		return errors.New("pipeline: repoOwner is required")
	}
	if c.RepoName == "" {
		return errors.New("pipeline: repoName is required")
	}
	if c.SharedSecret == "" {
		return errors.New("pipeline: sharedSecret is required")
	}
	if c.ArtifactNamePattern == "" {
		return errors.New("pipeline: artifactNamePattern is required")
	}
	if c.BuildCommand == "" {
		return errors.New("pipeline: buildCommand is required")
	}
	return nil
}

// PipelineId identifies the single pipeline of this deployment.
func (c *Conf) PipelineId() string {
	return c.RepoOwner + "/" + c.RepoName
}

// CheckoutRequest asks a source provider to materialize a checkout.
type CheckoutRequest struct {
	Owner  string
	Name   string
	Branch string
	Commit string
	Dir    string
}

// SourceProvider materializes the repository checkout as the Source
// stage's artifact. The source control integration is a collaborator.
type SourceProvider interface {
	Checkout(ctx context.Context, req CheckoutRequest) error
}

// Notifier is the final-stage bridge consumed by the orchestrator.
type Notifier interface {
	Notify(ctx context.Context, job notifier.Job)
}

// Trigger describes what started an execution.
type Trigger struct {
	Kind      string // "webhook" or "manual"
	CommitSha string
	Actor     string
}

// Orchestrator sequences the fixed Source→Build→Publish→Notify stage
// machine. Transitions are strictly sequential; the artifact produced by
// stage n is stage n+1's sole input; Notify always runs.
type Orchestrator struct {
	conf     *Conf
	store    *Store
	source   SourceProvider
	runner   runner.Runner
	storage  storage.IStorage
	notifier Notifier
	gateURL  string
}

// New creates an orchestrator. gateURL is the deployment gate's signal
// URL handed to every notify job.
func New(conf *Conf, store *Store, source SourceProvider, run runner.Runner, st storage.IStorage, n Notifier, gateURL string) *Orchestrator {
	return &Orchestrator{
		conf:     conf,
		store:    store,
		source:   source,
		runner:   run,
		storage:  st,
		notifier: n,
		gateURL:  gateURL,
	}
}

// PipelineId returns the configured pipeline's identifier.
func (o *Orchestrator) PipelineId() string {
	return o.conf.PipelineId()
}

// Start creates a new execution and runs it in the background. Concurrent
// triggers each get their own execution; the gate's first-signal-wins rule
// decides between them.
func (o *Orchestrator) Start(trigger Trigger) *Execution {
	exec := o.store.Create(o.conf.PipelineId(), trigger.Kind, trigger.CommitSha)
	metrics.ExecutionsStarted.WithLabelValues(trigger.Kind).Inc()
	log.Infow("execution started",
		"executionId", exec.Id, "pipelineId", exec.PipelineId,
		"trigger", trigger.Kind, "commit", trigger.CommitSha)

	safe.Go(func() {
		// The execution outlives the triggering HTTP request.
		o.Execute(context.Background(), exec.Id, trigger)
	})
	return exec
}

// Execute runs the stage sequence for an existing execution synchronously.
// Exported for Start's background goroutine and for deterministic tests.
func (o *Orchestrator) Execute(ctx context.Context, execId string, trigger Trigger) {
	exec, err := o.store.Get(execId)
	if err != nil {
		log.Errorw("execute unknown execution", "executionId", execId, "error", err)
		return
	}

	workRoot := filepath.Join(o.conf.WorkDir, execId)
	srcDir := filepath.Join(workRoot, "source")
	outDir := filepath.Join(workRoot, "build")
	defer func() {
		_ = os.RemoveAll(workRoot)
	}()

	status := StatusSucceeded
	reason := ReasonBuildSucceeded
	data := ""

	// Source
	if err := o.runSourceStage(ctx, execId, trigger, srcDir); err != nil {
		status, reason = StatusFailed, ReasonSourceFailed
	} else if err := o.runBuildStage(ctx, execId, srcDir, outDir); err != nil {
		// Build: failure skips directly to the failure path of Notify.
		status, reason = StatusFailed, ReasonBuildFailed
	} else if ref, err := o.runPublishStage(ctx, execId, outDir); err != nil {
		status, reason = StatusFailed, ReasonPublishFailed
	} else {
		data = ref
	}

	o.store.SetTerminal(execId, status)
	log.Infow("execution finished", "executionId", execId, "status", status, "reason", reason)

	// Notify always runs: it is the only channel back to the gate.
	sigStatus := gate.StatusSuccess
	if status == StatusFailed {
		sigStatus = gate.StatusFailure
	}
	o.notifier.Notify(ctx, notifier.Job{
		ExecutionId: execId,
		JobHandle:   exec.JobHandle,
		GateURL:     o.gateURL,
		Status:      sigStatus,
		Reason:      reason,
		Data:        data,
	})
}

func (o *Orchestrator) runSourceStage(ctx context.Context, execId string, trigger Trigger, srcDir string) error {
	o.store.BeginStage(execId, StageSource)
	started := time.Now()

	err := o.source.Checkout(ctx, CheckoutRequest{
		Owner:  o.conf.RepoOwner,
		Name:   o.conf.RepoName,
		Branch: o.conf.Branch,
		Commit: trigger.CommitSha,
		Dir:    srcDir,
	})

	o.finishStage(execId, StageResult{
		Name:       StageSource,
		Ok:         err == nil,
		Artifact:   srcDir,
		Error:      errString(err),
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
	return err
}

func (o *Orchestrator) runBuildStage(ctx context.Context, execId, srcDir, outDir string) error {
	o.store.BeginStage(execId, StageBuild)
	started := time.Now()

	res, err := o.runner.Run(ctx, runner.Request{
		Command:   o.conf.BuildCommand,
		SourceDir: srcDir,
		OutputDir: outDir,
	})
	if err == nil && !res.Succeeded() {
		err = errors.Errorf("build exited with code %d", res.ExitCode)
	}

	o.finishStage(execId, StageResult{
		Name:       StageBuild,
		Ok:         err == nil,
		Artifact:   outDir,
		Error:      errString(err),
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
	return err
}

func (o *Orchestrator) runPublishStage(ctx context.Context, execId, outDir string) (string, error) {
	o.store.BeginStage(execId, StagePublish)
	started := time.Now()

	prefix := o.conf.PublishPrefix + "/" + o.conf.PipelineId() + "/" + execId
	refs, err := o.publishArtifacts(ctx, outDir, prefix)
	if err == nil && len(refs) == 0 {
		err = errors.Errorf("no files matching %q in build output", o.conf.ArtifactNamePattern)
	}

	artifact := prefix
	if len(refs) > 0 {
		artifact = refs[0].String()
	}
	o.finishStage(execId, StageResult{
		Name:       StagePublish,
		Ok:         err == nil,
		Artifact:   artifact,
		Error:      errString(err),
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}
	return artifact, nil
}

func (o *Orchestrator) finishStage(execId string, result StageResult) {
	status := "succeeded"
	if !result.Ok {
		status = "failed"
		log.Warnw("stage failed", "executionId", execId, "stage", result.Name, "error", result.Error)
	}
	metrics.StageCompleted.WithLabelValues(result.Name, status).Inc()
	o.store.FinishStage(execId, result)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
