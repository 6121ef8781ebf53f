// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/greenscreen-io/go-cobol-task/task/cloner"
	"github.com/greenscreen-io/go-cobol-task/task/cobol"
	"github.com/greenscreen-io/go-cobol-task/task/downloader"
	"github.com/greenscreen-io/go-cobol-task/task/ibmi"
	"github.com/greenscreen-io/go-cobol-task/task/secret/file"
	"github.com/greenscreen-io/go-cobol-task/task/secret/vault"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cobol-task",
	Short: "Compile, call and submit COBOL programs on IBM i systems",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		// task output is written to stdout, so logs go to stderr
		slog.SetDefault(
			slog.New(
				slog.NewJSONHandler(
					os.Stderr,
					&slog.HandlerOptions{Level: level},
				),
			),
		)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Execute with verbose output")

	registerRunCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerServeCommand(rootCmd)
}

// newRouter returns a task router with the builtin handlers
// registered. Connections are dialed in dry-run mode until a
// native system dialer is available.
func newRouter() *task.Router {
	router := task.NewRouter()
	cobol.Register(router, cobol.Options{
		Dialer:    ibmi.DryRun(),
		Downloads: newDownloads(),
	})
	router.RegisterFunc(file.Type, file.FetchHandler)
	router.RegisterFunc(vault.Type, vault.FetchHandler)
	return router
}

// newDownloads returns a source downloader that caches artifacts
// under the user cache directory.
func newDownloads() downloader.Downloader {
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	return downloader.New(
		cloner.Default(),
		filepath.Join(cache, "greenscreen", "cobol-task"),
	)
}
