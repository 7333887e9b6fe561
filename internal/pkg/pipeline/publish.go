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
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/forgegate/forgegate/internal/pkg/storage"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentUploads = 4

// publishArtifacts copies files from the build output matching the
// configured name pattern into the artifact store under prefix. Matching
// is on the base name; directory layout is flattened. Zip archives in the
// output are expanded and their matching entries published the same way.
func (o *Orchestrator) publishArtifacts(ctx context.Context, outDir, prefix string) ([]storage.ArtifactRef, error) {
	var files, archives []string

	err := filepath.WalkDir(outDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".zip") {
			archives = append(archives, p)
			return nil
		}

		matched, err := path.Match(o.conf.ArtifactNamePattern, d.Name())
		if err != nil {
			return errors.Wrapf(err, "bad artifact pattern %q", o.conf.ArtifactNamePattern)
		}
		if matched {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "publish artifacts")
	}

	var (
		mu   sync.Mutex
		refs []storage.ArtifactRef
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)
	for _, p := range files {
		p := p // per-iteration binding; required while the go directive is <1.22
		g.Go(func() error {
			ref, err := o.publishFile(gctx, p, prefix+"/"+filepath.Base(p))
			if err != nil {
				return err
			}
			mu.Lock()
			refs = append(refs, ref)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Archives are expanded sequentially; each entry is a stream off the
	// same file handle.
	for _, p := range archives {
		archiveRefs, err := o.publishArchiveEntries(ctx, p, prefix)
		if err != nil {
			return nil, err
		}
		refs = append(refs, archiveRefs...)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Key < refs[j].Key })
	return refs, nil
}

// publishArchiveEntries expands a zip archive and publishes entries whose
// base name matches the pattern, flattened under prefix.
func (o *Orchestrator) publishArchiveEntries(ctx context.Context, archivePath, prefix string) ([]storage.ArtifactRef, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", archivePath)
	}
	defer func() { _ = zr.Close() }()

	var refs []storage.ArtifactRef
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Base(f.Name)
		matched, err := path.Match(o.conf.ArtifactNamePattern, name)
		if err != nil {
			return nil, errors.Wrapf(err, "bad artifact pattern %q", o.conf.ArtifactNamePattern)
		}
		if !matched {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "open archive entry %s", f.Name)
		}
		ref, err := o.storage.PutObject(ctx, prefix+"/"+name, rc, int64(f.UncompressedSize64), "application/octet-stream")
		_ = rc.Close()
		if err != nil {
			return nil, err
		}

		log.Debugw("published archive entry", "archive", archivePath, "entry", f.Name, "ref", ref.String())
		refs = append(refs, ref)
	}
	return refs, nil
}

func (o *Orchestrator) publishFile(ctx context.Context, filePath, objectName string) (storage.ArtifactRef, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return storage.ArtifactRef{}, errors.Wrapf(err, "open %s", filePath)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return storage.ArtifactRef{}, errors.Wrapf(err, "stat %s", filePath)
	}

	ref, err := o.storage.PutObject(ctx, objectName, io.Reader(f), info.Size(), "application/octet-stream")
	if err != nil {
		return storage.ArtifactRef{}, err
	}

	log.Debugw("published artifact", "file", filePath, "ref", ref.String())
	return ref, nil
}
