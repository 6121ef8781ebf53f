// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package downloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/greenscreen-io/go-cobol-task/task/cloner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Cloner to use in tests
type MockCloner struct {
	mock.Mock
}

func (m *MockCloner) Clone(ctx context.Context, params cloner.Params) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func TestFetch_Repo(t *testing.T) {
	mockCloner := new(MockCloner)
	d := New(mockCloner, t.TempDir())

	src := &Source{
		Repo: &Repository{Clone: "https://github.com/greenscreen-io/payroll.git", Ref: "main"},
		Path: "src/calcint.cbl",
	}

	mockCloner.On("Clone", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		params := args.Get(1).(cloner.Params)
		require.NoError(t, os.MkdirAll(filepath.Join(params.Dir, "src"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(params.Dir, "src", "calcint.cbl"), []byte("IDENTIFICATION DIVISION."), 0644))
	}).Return(nil)

	got, err := d.Fetch(context.Background(), src)
	require.NoError(t, err)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "IDENTIFICATION DIVISION.", string(content))

	// the second fetch is served from the clone cache
	got2, err := d.Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, got, got2)
	mockCloner.AssertNumberOfCalls(t, "Clone", 1)
}

func TestFetch_RepoError(t *testing.T) {
	mockCloner := new(MockCloner)
	d := New(mockCloner, t.TempDir())

	mockCloner.On("Clone", mock.Anything, mock.Anything).Return(errors.New("authentication failed"))

	_, err := d.Fetch(context.Background(), &Source{
		Repo: &Repository{Clone: "https://github.com/greenscreen-io/payroll.git"},
		Path: "src/calcint.cbl",
	})
	assert.ErrorContains(t, err, "failed to clone source repository")
}

func TestFetch_GitURI(t *testing.T) {
	mockCloner := new(MockCloner)
	d := New(mockCloner, t.TempDir())

	matchParams := mock.MatchedBy(func(params cloner.Params) bool {
		return params.Repo == "https://github.com/greenscreen-io/payroll.git" && params.Ref == "v2.4.0"
	})
	mockCloner.On("Clone", mock.Anything, matchParams).Run(func(args mock.Arguments) {
		params := args.Get(1).(cloner.Params)
		require.NoError(t, os.MkdirAll(params.Dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(params.Dir, "calcint.cbl"), []byte("IDENTIFICATION DIVISION."), 0644))
	}).Return(nil)

	got, err := d.Fetch(context.Background(), &Source{
		URI:  "https://github.com/greenscreen-io/payroll.git#v2.4.0",
		Path: "calcint.cbl",
	})
	require.NoError(t, err)
	assert.FileExists(t, got)
}

func TestFetch_LocalFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "calcint.cbl")
	require.NoError(t, os.WriteFile(file, []byte("IDENTIFICATION DIVISION."), 0644))

	d := New(cloner.Default(), t.TempDir())

	got, err := d.Fetch(context.Background(), &Source{URI: "file://" + file})
	require.NoError(t, err)
	assert.Equal(t, file, got)

	// bare paths resolve without a scheme
	got, err = d.Fetch(context.Background(), &Source{URI: file})
	require.NoError(t, err)
	assert.Equal(t, file, got)

	// plain files cannot address a member path
	_, err = d.Fetch(context.Background(), &Source{URI: file, Path: "src/calcint.cbl"})
	assert.ErrorContains(t, err, "requires an archive or repository source")
}

func TestFetch_Download(t *testing.T) {
	originalDownloadFileFn := downloadFileFn
	defer func() { downloadFileFn = originalDownloadFileFn }()

	var calls int
	downloadFileFn = func(ctx context.Context, url, dest string) (string, error) {
		calls++
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(dest, []byte("IDENTIFICATION DIVISION."), 0644); err != nil {
			return "", err
		}
		return dest, nil
	}

	d := New(cloner.Default(), t.TempDir())
	src := &Source{URI: "https://example.com/sources/calcint.cbl"}

	got, err := d.Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "calcint.cbl", filepath.Base(got))

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "IDENTIFICATION DIVISION.", string(content))

	// the second fetch is served from the cache
	_, err = d.Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetch_DownloadError(t *testing.T) {
	originalDownloadFileFn := downloadFileFn
	defer func() { downloadFileFn = originalDownloadFileFn }()

	downloadFileFn = func(ctx context.Context, url, dest string) (string, error) {
		return "", errors.New("download error with status code 503 for url " + url)
	}

	cache := t.TempDir()
	d := New(cloner.Default(), cache)

	_, err := d.Fetch(context.Background(), &Source{URI: "https://example.com/sources/calcint.cbl"})
	assert.Error(t, err)

	// the cache directory is removed so the fetch can be retried
	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetch_DownloadArchive(t *testing.T) {
	originalDownloadFileFn := downloadFileFn
	defer func() { downloadFileFn = originalDownloadFileFn }()

	downloadFileFn = func(ctx context.Context, url, dest string) (string, error) {
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return "", err
		}
		writeTarGz(t, dest, map[string]string{
			"payroll-main/src/calcint.cbl": "IDENTIFICATION DIVISION.",
			"payroll-main/README":          "payroll",
		})
		return dest, nil
	}

	d := New(cloner.Default(), t.TempDir())

	got, err := d.Fetch(context.Background(), &Source{
		URI:  "https://example.com/archives/payroll.tar.gz",
		Path: "src/calcint.cbl",
	})
	require.NoError(t, err)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "IDENTIFICATION DIVISION.", string(content))

	// a member missing from the archive fails
	_, err = d.Fetch(context.Background(), &Source{
		URI:  "https://example.com/archives/payroll.tar.gz",
		Path: "src/missing.cbl",
	})
	assert.ErrorContains(t, err, "not found")
}

func TestFetch_Compressed(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "calcint.cbl.gz")
	writeGz(t, file, "IDENTIFICATION DIVISION.")

	d := New(cloner.Default(), t.TempDir())

	got, err := d.Fetch(context.Background(), &Source{URI: "file://" + file})
	require.NoError(t, err)
	assert.Equal(t, "calcint.cbl", filepath.Base(got))

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "IDENTIFICATION DIVISION.", string(content))
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	d := New(cloner.Default(), t.TempDir())

	_, err := d.Fetch(context.Background(), &Source{URI: "ftp://example.com/calcint.cbl"})
	assert.ErrorContains(t, err, "unsupported source uri scheme")
}

func TestSourceValidate(t *testing.T) {
	tests := []struct {
		name    string
		src     *Source
		wantErr string
	}{
		{
			name: "inline",
			src:  &Source{Inline: "IDENTIFICATION DIVISION."},
		},
		{
			name: "uri",
			src:  &Source{URI: "https://example.com/sources/calcint.cbl"},
		},
		{
			name: "repo",
			src:  &Source{Repo: &Repository{Clone: "https://github.com/greenscreen-io/payroll.git"}, Path: "src/calcint.cbl"},
		},
		{
			name:    "nil",
			src:     nil,
			wantErr: "no source provided",
		},
		{
			name:    "empty",
			src:     &Source{},
			wantErr: "source requires one of inline, uri or repo",
		},
		{
			name:    "ambiguous",
			src:     &Source{Inline: "IDENTIFICATION DIVISION.", URI: "https://example.com/sources/calcint.cbl"},
			wantErr: "only one of",
		},
		{
			name:    "repo_without_clone",
			src:     &Source{Repo: &Repository{Ref: "main"}, Path: "src/calcint.cbl"},
			wantErr: "clone url",
		},
		{
			name:    "repo_without_path",
			src:     &Source{Repo: &Repository{Clone: "https://github.com/greenscreen-io/payroll.git"}},
			wantErr: "path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.src.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
