package downloader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/greenscreen-io/go-cobol-task/task/logger"
)

// downloadTimeout bounds the retries for a single artifact
// download.
const downloadTimeout = time.Minute

// functions for mocking
var (
	mkdirAllFn     = os.MkdirAll
	httpGetFn      = http.Get
	createFn       = os.Create
	copyFn         = io.Copy
	isCacheHitFn   = isCacheHit
	downloadFileFn = downloadFile
	backoffFn      = createBackoff
)

// downloadFile fetches the file at url and writes it to dest.
func downloadFile(ctx context.Context, url, dest string) (string, error) {
	log := logger.FromContext(ctx)

	// create the directory where the target is downloaded.
	if err := mkdirAllFn(filepath.Dir(dest), 0777); err != nil {
		return "", err
	}

	log.With("source", url, "destination", dest).Debug("download source artifact")

	resp, err := getWithRetry(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to download file from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if code := resp.StatusCode; code > 299 {
		return "", fmt.Errorf("download error with status code %d for url %s", code, url)
	}

	outFile, err := createFn(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	if _, err := copyFn(outFile, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write to file: %w", err)
	}

	return dest, nil
}

// getWithRetry fetches the url, retrying transient failures
// with exponential backoff. Responses in the 500 range are
// retried because they typically relate to outages on the
// server side and are not permanent errors. Client errors
// are returned to the caller without a retry.
func getWithRetry(ctx context.Context, url string) (*http.Response, error) {
	b := backoffFn(ctx, downloadTimeout)
	for {
		resp, err := httpGetFn(url)
		// do not retry on Canceled or DeadlineExceeded
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		duration := b.NextBackOff()
		if duration == backoff.Stop {
			if err != nil {
				return nil, err
			}
			return resp, nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(duration)
	}
}

func createBackoff(ctx context.Context, maxElapsedTime time.Duration) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.MaxElapsedTime = maxElapsedTime
	return backoff.WithContext(exp, ctx)
}

// getDownloadPath returns the full download path given the
// download url and the destination folder dest.
func getDownloadPath(url, dest string) string {
	fileName := filepath.Base(url)
	return filepath.Join(dest, fileName)
}

// isCacheHit checks if the dest path already exists.
func isCacheHit(ctx context.Context, dest string) bool {
	log := logger.FromContext(ctx).With("target", dest)

	if _, err := os.Stat(dest); err == nil {
		log.Debug("cache hit")
		return true
	}

	log.Debug("cache miss")
	return false
}

// IsRepository returns true if the provided source uri is a
// git repository.
func IsRepository(s string) bool {
	u, _ := url.Parse(s)
	return u != nil && strings.HasSuffix(u.Path, ".git")
}

// SplitRef splits the repository url and the commit ref.
func SplitRef(s string) (string, string) {
	u, err := url.Parse(s)
	if err != nil || u.Fragment == "" {
		return s, ""
	}
	ref := u.Fragment
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), ref
}

func getHash(s string) string {
	hash := sha256.New()
	hash.Write([]byte(s))
	return hex.EncodeToString(hash.Sum(nil))
}
