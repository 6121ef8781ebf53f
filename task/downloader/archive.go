// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/greenscreen-io/go-cobol-task/task/logger"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/mholt/archives"
)

// extractArchive unpacks the archive at srcPath into destDir,
// reporting whether srcPath was recognized as an archive. It
// unpacks everything directly into the destination directory and
// skips the top-level directory. For example, a github repo
// called "myrepo" with a file "task.cbl" at the root will have
// an archive with the structure myrepo/task.cbl. If destDir is
// "/tmp", this extracts the archive as /tmp/task.cbl similar to
// the clone behavior.
func extractArchive(ctx context.Context, srcPath, destDir string) (bool, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return false, fmt.Errorf("failed to open archive: %w", err)
	}
	defer src.Close()

	format, input, err := archives.Identify(ctx, filepath.Base(srcPath), src)
	if err != nil {
		if errors.Is(err, archives.NoMatch) {
			return false, nil
		}
		return false, fmt.Errorf("failed to identify archive format: %w", err)
	}

	extractor, ok := format.(archives.Extractor)
	if !ok {
		// single-file compression formats are not archives
		return false, nil
	}

	log := logger.FromContext(ctx).With("source", srcPath, "destination", destDir)
	log.Debug("extract source archive")

	if err := extractor.Extract(ctx, input, extractEntry(destDir)); err != nil {
		return false, fmt.Errorf("error extracting archive: %w", err)
	}
	return true, nil
}

// extractEntry returns the file handler that writes archive
// entries under destDir with the top-level path component
// removed.
func extractEntry(destDir string) archives.FileHandler {
	return func(ctx context.Context, f archives.FileInfo) error {
		// skip directories
		if f.IsDir() {
			return nil
		}

		// get the relative path of the file within the archive
		relPath := f.NameInArchive

		// if there's more than one component, remove the first
		// one (top-level directory)
		if parts := strings.Split(relPath, "/"); len(parts) > 1 {
			relPath = filepath.Join(parts[1:]...)
		} else {
			relPath = filepath.FromSlash(relPath)
		}

		// construct the target file path
		targetFile := filepath.Join(destDir, relPath)
		if !strings.HasPrefix(targetFile, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal entry path in archive: %s", f.NameInArchive)
		}

		// ensure the directory structure exists
		if err := os.MkdirAll(filepath.Dir(targetFile), 0755); err != nil {
			return fmt.Errorf("error creating directories: %w", err)
		}

		in, err := f.Open()
		if err != nil {
			return fmt.Errorf("error opening archive entry: %w", err)
		}
		defer in.Close()

		outFile, err := os.Create(targetFile)
		if err != nil {
			return fmt.Errorf("error creating file: %w", err)
		}
		defer outFile.Close()

		// copy the contents from the archive to the new file
		if _, err := io.Copy(outFile, in); err != nil {
			return fmt.Errorf("error copying file contents: %w", err)
		}
		return nil
	}
}

// compressionSuffix returns the compression suffix of file when
// it names a compressed single file. Compressed archives are
// excluded so they go through extraction instead.
func compressionSuffix(file string) string {
	switch {
	case strings.HasSuffix(file, ".tar.gz") || strings.HasSuffix(file, ".tgz"):
		return ""
	case strings.HasSuffix(file, ".tar.zst"):
		return ""
	case strings.HasSuffix(file, ".gz"):
		return ".gz"
	case strings.HasSuffix(file, ".zst"):
		return ".zst"
	}
	return ""
}

// decompressFile decompresses file into destDir and returns the
// decompressed file path. The suffix selects the decompressor.
func decompressFile(ctx context.Context, file, destDir, suffix string) (string, error) {
	dest := filepath.Join(destDir, strings.TrimSuffix(filepath.Base(file), suffix))
	if isCacheHitFn(ctx, dest) {
		return dest, nil
	}

	log := logger.FromContext(ctx).With("source", file, "destination", dest)
	log.Debug("decompress source artifact")

	if err := mkdirAllFn(destDir, 0755); err != nil {
		return "", err
	}

	in, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("failed to open compressed file: %w", err)
	}
	defer in.Close()

	var reader io.ReadCloser
	switch suffix {
	case ".zst":
		zr, err := zstd.NewReader(in)
		if err != nil {
			return "", fmt.Errorf("failed to create zstd reader: %w", err)
		}
		reader = zr.IOReadCloser()
	case ".gz":
		gr, err := gzip.NewReader(in)
		if err != nil {
			return "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		reader = gr
	default:
		return "", fmt.Errorf("unsupported compression suffix %s", suffix)
	}
	defer reader.Close()

	outFile, err := createFn(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	if _, err := copyFn(outFile, reader); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to decompress file: %w", err)
	}
	return dest, nil
}
