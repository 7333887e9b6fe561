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

package runner

import "context"

// Request describes one build invocation. The runner is stateless per
// invocation: it consumes a source directory and produces output files in
// OutputDir.
type Request struct {
	// Command is the fixed build command, run through the shell.
	Command string
	// SourceDir is the checked-out source the build runs in.
	SourceDir string
	// OutputDir is where the build is expected to leave its artifacts.
	OutputDir string
	// Env is extra environment in KEY=VALUE form.
	Env []string
}

// Result is the outcome of one build invocation.
type Result struct {
	ExitCode int
	Output   string
}

// Succeeded reports whether the build exited cleanly.
func (r *Result) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}

// Runner executes a build command in an isolated environment.
// The compute backend is a collaborator; the orchestrator only depends on
// this interface.
type Runner interface {
	Run(ctx context.Context, req Request) (*Result, error)
}
