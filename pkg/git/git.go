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

package git

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Auth carries credentials for remote operations. Token auth is passed to
// git through a temporary askpass script, never on the command line.
type Auth struct {
	Username string
	Token    string
}

// CloneRequest describes a shallow checkout of one branch.
type CloneRequest struct {
	Workdir string
	RepoURL string
	Branch  string
	Auth    Auth
}

// Clone performs a shallow clone of the requested branch into Workdir.
func Clone(req CloneRequest) error {
	args := []string{"clone", "--depth", "1"}
	if strings.TrimSpace(req.Branch) != "" {
		args = append(args, "--branch", req.Branch)
	}
	args = append(args, req.RepoURL, ".")
	return runGit(req.Workdir, req.Auth, args...)
}

// HeadSHA returns the commit id the workdir is checked out at.
func HeadSHA(workdir string) (string, error) {
	out, err := runGitOutput(workdir, Auth{}, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func runGit(workdir string, auth Auth, args ...string) error {
	_, err := runGitOutput(workdir, auth, args...)
	return err
}

func runGitOutput(workdir string, auth Auth, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = workdir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if auth.Token != "" {
		username := auth.Username
		if username == "" {
			username = "oauth2"
		}
		askPass, err := os.CreateTemp("", "forgegate-git-askpass-*")
		if err != nil {
			return "", err
		}
		askPassPath := askPass.Name()
		_ = askPass.Close()
		defer func() { _ = os.Remove(askPassPath) }()

		script := "#!/bin/sh\ncase \"$1\" in\n  *Username*) echo \"$GIT_USERNAME\" ;;\n  *Password*) echo \"$GIT_PASSWORD\" ;;\n  *) echo \"\" ;;\nesac\n"
		if err := os.WriteFile(askPassPath, []byte(script), 0o700); err != nil {
			return "", err
		}
		cmd.Env = append(cmd.Env, "GIT_ASKPASS="+askPassPath, "GIT_USERNAME="+username, "GIT_PASSWORD="+auth.Token)
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
