// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package downloader resolves task source files to the local
// filesystem. Remote artifacts and repository clones are cached
// on disk so repeated executions of the same task do not fetch
// twice.
package downloader

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/greenscreen-io/go-cobol-task/task/cloner"
	"github.com/greenscreen-io/go-cobol-task/task/logger"
	"github.com/pkg/errors"
)

type (
	// Repository identifies a git repository that holds
	// source files.
	Repository struct {
		Clone string `json:"clone"`
		Ref   string `json:"ref"`
		Sha   string `json:"sha"`
	}

	// Source identifies where a source file comes from.
	// Exactly one of Inline, URI or Repo is set.
	Source struct {
		Inline string      `json:"inline"`
		URI    string      `json:"uri"`
		Repo   *Repository `json:"repo"`

		// Path selects the file within a repository or an
		// extracted archive.
		Path string `json:"path"`
	}
)

// Validate checks that the source identifies exactly one origin.
func (s *Source) Validate() error {
	if s == nil {
		return errors.New("no source provided")
	}
	count := 0
	if s.Inline != "" {
		count++
	}
	if s.URI != "" {
		count++
	}
	if s.Repo != nil {
		count++
	}
	switch count {
	case 0:
		return errors.New("source requires one of inline, uri or repo")
	case 1:
	default:
		return errors.New("source must set only one of inline, uri or repo")
	}
	if s.Repo != nil {
		if s.Repo.Clone == "" {
			return errors.New("source repo requires a clone url")
		}
		if s.Path == "" {
			return errors.New("source path is required with a repo source")
		}
	}
	return nil
}

// Downloader resolves sources to files on the local filesystem.
type Downloader struct {
	cloner cloner.Cloner
	dir    string
}

// New returns a Downloader that caches fetched sources under dir.
func New(cloner cloner.Cloner, dir string) Downloader {
	return Downloader{cloner: cloner, dir: dir}
}

// Fetch resolves src to a file on the local filesystem and
// returns its path. Inline sources carry their content with
// them and are rejected.
func (d *Downloader) Fetch(ctx context.Context, src *Source) (string, error) {
	if err := src.Validate(); err != nil {
		return "", err
	}
	if src.Repo == nil && IsRepository(src.URI) {
		// git urls may carry the ref as a url fragment
		clone, ref := SplitRef(src.URI)
		src = &Source{Repo: &Repository{Clone: clone, Ref: ref}, Path: src.Path}
	}
	switch {
	case src.Repo != nil:
		return d.fetchRepo(ctx, src)
	case src.URI != "":
		return d.fetchURI(ctx, src)
	default:
		return "", errors.New("inline sources are not fetched")
	}
}

func (d *Downloader) fetchRepo(ctx context.Context, src *Source) (string, error) {
	repo := src.Repo
	dest := filepath.Join(d.dir, getHashOfRepo(repo))

	if !isCacheHitFn(ctx, dest) {
		log := logger.FromContext(ctx).With(
			"source", repo.Clone,
			"revision", repo.Ref,
			"sha", repo.Sha,
			"target", dest,
		)
		log.Debug("clone source repository")

		err := d.cloner.Clone(ctx, cloner.Params{
			Repo: repo.Clone,
			Ref:  repo.Ref,
			Sha:  repo.Sha,
			Dir:  dest,
		})
		if err != nil {
			// remove the clone directory so the next attempt
			// starts clean
			os.RemoveAll(dest)
			return "", errors.Wrap(err, "failed to clone source repository")
		}
	}
	return sourceIn(dest, src.Path)
}

func (d *Downloader) fetchURI(ctx context.Context, src *Source) (string, error) {
	u, err := url.Parse(src.URI)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse source uri")
	}

	switch u.Scheme {
	case "http", "https":
		dest := filepath.Join(d.dir, getHash(src.URI))
		file := getDownloadPath(src.URI, dest)
		if !isCacheHitFn(ctx, file) {
			if _, err := downloadFileFn(ctx, src.URI, file); err != nil {
				// remove the cache directory so the next
				// attempt starts clean
				os.RemoveAll(dest)
				return "", err
			}
		}
		return d.unpack(ctx, file, dest, src.Path)
	case "file":
		return d.unpack(ctx, u.Path, filepath.Join(d.dir, getHash(u.Path)), src.Path)
	case "":
		return d.unpack(ctx, src.URI, filepath.Join(d.dir, getHash(src.URI)), src.Path)
	default:
		return "", errors.Errorf("unsupported source uri scheme: %s", u.Scheme)
	}
}

// unpack turns a fetched artifact into the source file the
// caller reads. Archives are extracted with the top-level
// directory stripped. Compressed files are decompressed.
// Anything else is returned as is.
func (d *Downloader) unpack(ctx context.Context, file, dest, path string) (string, error) {
	if suffix := compressionSuffix(file); suffix != "" {
		return decompressFile(ctx, file, dest, suffix)
	}

	tree := filepath.Join(dest, "unpacked")
	if isCacheHitFn(ctx, tree) {
		return sourceIn(tree, path)
	}

	extracted, err := extractArchive(ctx, file, tree)
	if err != nil {
		os.RemoveAll(tree)
		return "", err
	}
	if extracted {
		return sourceIn(tree, path)
	}

	if path != "" {
		return "", errors.Errorf("source path %s requires an archive or repository source", path)
	}
	return file, nil
}

// sourceIn returns the path of the source file within an
// extracted or cloned directory tree.
func sourceIn(dir, path string) (string, error) {
	if path == "" {
		return "", errors.New("source path is required with archive and repository sources")
	}
	file := filepath.Join(dir, filepath.FromSlash(path))
	if _, err := os.Stat(file); err != nil {
		return "", errors.Wrapf(err, "source file %s not found", path)
	}
	return file, nil
}

// getHashOfRepo constructs a hash from the repository
// coordinates to figure out whether it should be re-cloned.
func getHashOfRepo(repo *Repository) string {
	return getHash(fmt.Sprintf("%s|%s|%s", repo.Clone, repo.Ref, repo.Sha))
}
