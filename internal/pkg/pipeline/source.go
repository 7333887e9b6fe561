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
	"fmt"
	"os"
	"strings"

	"github.com/forgegate/forgegate/pkg/git"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/pkg/errors"
)

// GitSource materializes checkouts with a shallow git clone.
type GitSource struct {
	baseURL string
	auth    git.Auth
}

// NewGitSource creates a git source provider rooted at baseURL,
// e.g. "https://github.com".
func NewGitSource(baseURL string, auth git.Auth) *GitSource {
	return &GitSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
	}
}

// Checkout clones the requested branch into req.Dir.
func (g *GitSource) Checkout(_ context.Context, req CheckoutRequest) error {
	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return errors.Wrap(err, "create checkout dir")
	}

	repoURL := fmt.Sprintf("%s/%s/%s.git", g.baseURL, req.Owner, req.Name)
	if err := git.Clone(git.CloneRequest{
		Workdir: req.Dir,
		RepoURL: repoURL,
		Branch:  req.Branch,
		Auth:    g.auth,
	}); err != nil {
		return errors.Wrap(err, "clone source")
	}

	if sha, err := git.HeadSHA(req.Dir); err == nil {
		log.Debugw("source checked out", "repo", repoURL, "branch", req.Branch, "head", sha)
	}
	return nil
}
