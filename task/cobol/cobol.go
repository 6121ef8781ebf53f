// Copyright 2025 Greenscreen IO, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cobol implements task handlers that compile, call
// and submit COBOL programs on IBM i systems.
package cobol

import (
	"github.com/greenscreen-io/go-cobol-task/task"
	"github.com/greenscreen-io/go-cobol-task/task/downloader"
	"github.com/greenscreen-io/go-cobol-task/task/ibmi"
	"github.com/greenscreen-io/go-cobol-task/task/schema"
)

// Task types handled by this package.
const (
	TypeCompile = "cobol/compile"
	TypeCall    = "cobol/call"
	TypeSubmit  = "cobol/submit"
)

// schemas validates handler input before execution.
var schemas = schema.Must()

// Options configures the cobol task handlers.
type Options struct {
	// Dialer establishes connections to IBM i systems.
	Dialer ibmi.Dialer

	// Downloads resolves task source files to the local
	// filesystem.
	Downloads downloader.Downloader
}

// Register registers the cobol task handlers on the router.
func Register(r *task.Router, opts Options) {
	r.Register(TypeCompile, NewCompile(opts.Dialer, opts.Downloads))
	r.Register(TypeCall, NewCall(opts.Dialer))
	r.Register(TypeSubmit, NewSubmit(opts.Dialer))
}
