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

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/forgegate/forgegate/pkg/log"
	"github.com/pkg/errors"
)

// LocalRunner runs the build command on the host through the shell.
type LocalRunner struct{}

// NewLocalRunner creates a local shell runner.
func NewLocalRunner() *LocalRunner {
	return &LocalRunner{}
}

// Run executes the build command in the source directory. A non-zero exit
// is reported through Result.ExitCode, not as an error; errors are
// reserved for failures to invoke the command at all.
func (r *LocalRunner) Run(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Command) == "" {
		return nil, errors.New("runner: build command is required")
	}
	if req.OutputDir != "" {
		if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
			return nil, errors.Wrap(err, "runner: create output dir")
		}
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", req.Command)
	cmd.Dir = req.SourceDir
	cmd.Env = append(os.Environ(), req.Env...)
	if req.OutputDir != "" {
		cmd.Env = append(cmd.Env, "BUILD_OUTPUT_DIR="+req.OutputDir)
	}

	out, err := cmd.CombinedOutput()
	result := &Result{Output: string(out)}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			log.Warnw("build command exited non-zero",
				"command", req.Command, "exitCode", result.ExitCode)
			return result, nil
		}
		return nil, errors.Wrap(err, "runner: invoke build command")
	}

	log.Debugw("build command completed", "command", req.Command, "dir", req.SourceDir)
	return result, nil
}
